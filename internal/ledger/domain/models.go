package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// TransactionType distinguishes revenue from expense entries.
type TransactionType string

const (
	TransactionTypeRevenue TransactionType = "Revenu"
	TransactionTypeExpense TransactionType = "Dépense"
)

const TransactionStatusCompleted = "Complété"

// Transaction is an immutable accounting entry. The table is the audit trail:
// entries survive deletion of the activities that produced them.
type Transaction struct {
	ID          snowflake.ID    `gorm:"primaryKey" json:"id"`
	OccurredAt  time.Time       `gorm:"not null;index" json:"occurred_at"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Type        TransactionType `gorm:"type:text;not null" json:"type"`
	Category    string          `gorm:"type:text" json:"category,omitempty"`
	Amount      int64           `gorm:"not null" json:"amount"`
	Status      string          `gorm:"type:text;not null" json:"status"`
	CreatedAt   time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Transaction) TableName() string { return "transactions" }
