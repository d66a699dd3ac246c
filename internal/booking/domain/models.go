package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Booking statuses as shown on the schedule screens.
const (
	StatusPending   = "En attente"
	StatusConfirmed = "Confirmé"
	StatusPaid      = "Payé"
)

// Booking is owned by the schedule subsystem; the billing ledger only flips
// its status on payment and on payment cancellation.
type Booking struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	ClientName string       `gorm:"type:text;not null" json:"client_name"`
	Status     string       `gorm:"type:text;not null;default:'En attente'" json:"status"`
	StartsAt   *time.Time   `json:"starts_at,omitempty"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Booking) TableName() string { return "bookings" }
