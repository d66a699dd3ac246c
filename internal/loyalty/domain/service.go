package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Service is the per-client loyalty point ledger. Debits are applied as a
// single conditional update with a floor at zero, so two concurrent point
// purchases can never overdraw a balance.
type Service interface {
	Balance(ctx context.Context, clientID snowflake.ID) (int64, error)
	Debit(ctx context.Context, clientID snowflake.ID, points int64) error
	DebitTx(ctx context.Context, tx *gorm.DB, clientID snowflake.ID, points int64) error
	Credit(ctx context.Context, clientID snowflake.ID, points int64) error
}

var (
	ErrClientNotFound     = errors.New("client_not_found")
	ErrInsufficientPoints = errors.New("insufficient_points")
	ErrInvalidPoints      = errors.New("invalid_points")
	ErrMissingTx          = errors.New("missing_transaction")
)
