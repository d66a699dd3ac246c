package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Service receives the contract-paid signal. MarkPaid is idempotent so the
// signal stays exactly-once across a checkout plus any number of installments.
type Service interface {
	MarkPaid(ctx context.Context, contractID snowflake.ID) error
	MarkPaidTx(ctx context.Context, tx *gorm.DB, contractID snowflake.ID) error
}

var (
	ErrContractNotFound = errors.New("contract_not_found")
	ErrMissingTx        = errors.New("missing_transaction")
)
