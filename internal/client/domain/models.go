package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Client is the studio-facing customer record. Only the loyalty balance is
// mutated by the billing ledger; everything else belongs to client management.
type Client struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	Name          string       `gorm:"type:text;not null" json:"name"`
	Phone         string       `gorm:"type:text" json:"phone,omitempty"`
	LoyaltyPoints int64        `gorm:"not null;default:0" json:"loyalty_points"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Client) TableName() string { return "clients" }
