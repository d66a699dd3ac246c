package domain

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// Entry is the input for appending one transaction. Amounts are signed:
// revenue entries are positive, expense entries negative.
type Entry struct {
	OccurredAt  time.Time
	Description string
	Type        TransactionType
	Category    string
	Amount      int64
	Status      string
}

// ListRequest filters the transaction list. Zero values match everything.
type ListRequest struct {
	Type TransactionType
	From time.Time
	To   time.Time
}

// Service is the append-only transaction ledger writer. There is no update
// or delete operation on purpose.
type Service interface {
	Add(ctx context.Context, entry Entry) (*Transaction, error)
	AddTx(ctx context.Context, tx *gorm.DB, entry Entry) (*Transaction, error)
	List(ctx context.Context, req ListRequest) ([]Transaction, error)
}

var (
	ErrInvalidType       = errors.New("invalid_transaction_type")
	ErrInvalidAmount     = errors.New("invalid_transaction_amount")
	ErrInvalidOccurredAt = errors.New("invalid_occurred_at")
	ErrMissingTx         = errors.New("missing_transaction")
)
