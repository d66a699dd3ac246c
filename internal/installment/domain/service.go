package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

// Service applies partial payments against open installment activities.
// An activity is Open while remaining_amount > 0 and effectively terminal
// once it reaches zero: any further installment trips the overpayment guard.
type Service interface {
	Record(ctx context.Context, activityID snowflake.ID, amount int64) error
}

var (
	ErrInvalidAmount    = errors.New("invalid_installment_amount")
	ErrOverpayment      = errors.New("overpayment")
	ErrActivityNotFound = errors.New("activity_not_found")
	ErrNotInstallment   = errors.New("not_installment")
)
