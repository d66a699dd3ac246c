package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	bookingdomain "github.com/modiatoukalord/kheops-sub000/internal/booking/domain"
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

func NewService(p Params) bookingdomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("booking.service"),
	}
}

func (s *Service) UpdateStatus(ctx context.Context, bookingID snowflake.ID, status string) error {
	return s.updateStatus(ctx, s.db, bookingID, status)
}

func (s *Service) UpdateStatusTx(ctx context.Context, tx *gorm.DB, bookingID snowflake.ID, status string) error {
	if tx == nil {
		return bookingdomain.ErrMissingTx
	}
	return s.updateStatus(ctx, tx, bookingID, status)
}

func (s *Service) updateStatus(ctx context.Context, db *gorm.DB, bookingID snowflake.ID, status string) error {
	switch status {
	case bookingdomain.StatusPending, bookingdomain.StatusConfirmed, bookingdomain.StatusPaid:
	default:
		return bookingdomain.ErrInvalidStatus
	}

	result := db.WithContext(ctx).Exec(
		`UPDATE bookings SET status = ?, updated_at = ? WHERE id = ?`,
		status,
		time.Now().UTC(),
		bookingID,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return bookingdomain.ErrBookingNotFound
	}

	s.log.Info("booking status updated",
		zap.String("booking_id", bookingID.String()),
		zap.String("status", status),
	)
	return nil
}
