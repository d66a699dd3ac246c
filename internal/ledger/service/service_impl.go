package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	ledgerdomain "github.com/modiatoukalord/kheops-sub000/internal/ledger/domain"
	"github.com/modiatoukalord/kheops-sub000/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
}

func NewService(p Params) ledgerdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("ledger.service"),
		genID: p.GenID,
	}
}

// Add appends one transaction using the default connection.
func (s *Service) Add(ctx context.Context, entry ledgerdomain.Entry) (*ledgerdomain.Transaction, error) {
	return s.add(ctx, s.db, entry)
}

// AddTx appends one transaction inside the caller's database transaction, so
// checkout side effects commit or roll back together with their activities.
func (s *Service) AddTx(ctx context.Context, tx *gorm.DB, entry ledgerdomain.Entry) (*ledgerdomain.Transaction, error) {
	if tx == nil {
		return nil, ledgerdomain.ErrMissingTx
	}
	return s.add(ctx, tx, entry)
}

func (s *Service) add(ctx context.Context, db *gorm.DB, entry ledgerdomain.Entry) (*ledgerdomain.Transaction, error) {
	if err := ledgerdomain.ValidateEntry(entry); err != nil {
		return nil, err
	}

	status := strings.TrimSpace(entry.Status)
	if status == "" {
		status = ledgerdomain.TransactionStatusCompleted
	}

	record := ledgerdomain.Transaction{
		ID:          s.genID.Generate(),
		OccurredAt:  entry.OccurredAt.UTC(),
		Description: strings.TrimSpace(entry.Description),
		Type:        entry.Type,
		Category:    strings.TrimSpace(entry.Category),
		Amount:      entry.Amount,
		Status:      status,
	}
	if err := db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}

	metrics.Ledger().IncTransaction(string(record.Type))
	return &record, nil
}

// List returns transactions matching the filter, newest first.
func (s *Service) List(ctx context.Context, req ledgerdomain.ListRequest) ([]ledgerdomain.Transaction, error) {
	query := s.db.WithContext(ctx).Model(&ledgerdomain.Transaction{})
	if req.Type != "" {
		query = query.Where("type = ?", req.Type)
	}
	if !req.From.IsZero() {
		query = query.Where("occurred_at >= ?", req.From.UTC())
	}
	if !req.To.IsZero() {
		query = query.Where("occurred_at < ?", req.To.UTC())
	}

	var records []ledgerdomain.Transaction
	if err := query.Order("occurred_at DESC, id DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
