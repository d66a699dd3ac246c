package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	contractdomain "github.com/modiatoukalord/kheops-sub000/internal/contract/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewService(p Params) contractdomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("contract.service"),
	}
}

func (s *Service) MarkPaid(ctx context.Context, contractID snowflake.ID) error {
	return s.markPaid(ctx, s.db, contractID)
}

func (s *Service) MarkPaidTx(ctx context.Context, tx *gorm.DB, contractID snowflake.ID) error {
	if tx == nil {
		return contractdomain.ErrMissingTx
	}
	return s.markPaid(ctx, tx, contractID)
}

func (s *Service) markPaid(ctx context.Context, db *gorm.DB, contractID snowflake.ID) error {
	now := time.Now().UTC()
	result := db.WithContext(ctx).Exec(
		`UPDATE contracts
		 SET status = ?, paid_at = ?, updated_at = ?
		 WHERE id = ? AND paid_at IS NULL`,
		contractdomain.StatusPaid,
		now,
		now,
		contractID,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		s.log.Info("contract marked paid", zap.String("contract_id", contractID.String()))
		return nil
	}

	// Zero rows means either already paid (fine) or unknown contract.
	var count int64
	if err := db.WithContext(ctx).
		Model(&contractdomain.Contract{}).
		Where("id = ?", contractID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return contractdomain.ErrContractNotFound
	}
	return nil
}
