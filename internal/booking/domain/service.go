package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Service mutates booking payment state on behalf of the ledger.
type Service interface {
	UpdateStatus(ctx context.Context, bookingID snowflake.ID, status string) error
	UpdateStatusTx(ctx context.Context, tx *gorm.DB, bookingID snowflake.ID, status string) error
}

var (
	ErrBookingNotFound = errors.New("booking_not_found")
	ErrInvalidStatus   = errors.New("invalid_booking_status")
	ErrMissingTx       = errors.New("missing_transaction")
)
