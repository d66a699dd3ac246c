package service

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	clientdomain "github.com/modiatoukalord/kheops-sub000/internal/client/domain"
	loyaltydomain "github.com/modiatoukalord/kheops-sub000/internal/loyalty/domain"
	"github.com/modiatoukalord/kheops-sub000/internal/observability/metrics"
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

func NewService(p Params) loyaltydomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("loyalty.service"),
	}
}

// Balance returns the current point balance for a client.
func (s *Service) Balance(ctx context.Context, clientID snowflake.ID) (int64, error) {
	var client clientdomain.Client
	err := s.db.WithContext(ctx).First(&client, "id = ?", clientID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, loyaltydomain.ErrClientNotFound
		}
		return 0, err
	}
	return client.LoyaltyPoints, nil
}

// Debit removes points from a client balance using the default connection.
func (s *Service) Debit(ctx context.Context, clientID snowflake.ID, points int64) error {
	return s.debit(ctx, s.db, clientID, points)
}

// DebitTx removes points inside the caller's transaction, so a rejected
// checkout rolls the debit back with everything else.
func (s *Service) DebitTx(ctx context.Context, tx *gorm.DB, clientID snowflake.ID, points int64) error {
	if tx == nil {
		return loyaltydomain.ErrMissingTx
	}
	return s.debit(ctx, tx, clientID, points)
}

func (s *Service) debit(ctx context.Context, db *gorm.DB, clientID snowflake.ID, points int64) error {
	if points <= 0 {
		return loyaltydomain.ErrInvalidPoints
	}

	// Guarded decrement: the balance check and the write are one statement.
	result := db.WithContext(ctx).Exec(
		`UPDATE clients
		 SET loyalty_points = loyalty_points - ?, updated_at = ?
		 WHERE id = ? AND loyalty_points >= ?`,
		points,
		time.Now().UTC(),
		clientID,
		points,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		exists, err := s.clientExists(ctx, db, clientID)
		if err != nil {
			return err
		}
		if !exists {
			return loyaltydomain.ErrClientNotFound
		}
		return loyaltydomain.ErrInsufficientPoints
	}

	metrics.Ledger().IncPointsDebit()
	return nil
}

// Credit grants points to a client balance.
func (s *Service) Credit(ctx context.Context, clientID snowflake.ID, points int64) error {
	if points <= 0 {
		return loyaltydomain.ErrInvalidPoints
	}

	result := s.db.WithContext(ctx).Exec(
		`UPDATE clients
		 SET loyalty_points = loyalty_points + ?, updated_at = ?
		 WHERE id = ?`,
		points,
		time.Now().UTC(),
		clientID,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return loyaltydomain.ErrClientNotFound
	}
	return nil
}

func (s *Service) clientExists(ctx context.Context, db *gorm.DB, clientID snowflake.ID) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).
		Model(&clientdomain.Client{}).
		Where("id = ?", clientID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
