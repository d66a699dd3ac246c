package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	StatusOpen = "En cours"
	StatusPaid = "Payé"
)

// Contract is owned by contract management; the ledger only marks it paid.
type Contract struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	ClientName string       `gorm:"type:text;not null" json:"client_name"`
	Status     string       `gorm:"type:text;not null;default:'En cours'" json:"status"`
	PaidAt     *time.Time   `json:"paid_at,omitempty"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Contract) TableName() string { return "contracts" }
