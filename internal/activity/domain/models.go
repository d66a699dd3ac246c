package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// PaymentType selects how a checkout is settled.
type PaymentType string

const (
	PaymentTypeDirect      PaymentType = "Direct"
	PaymentTypeInstallment PaymentType = "Échéancier"
	PaymentTypePoints      PaymentType = "Points"
)

// Activity is one billable line item sold to a client. Immutable after
// creation except for paid/remaining amounts (installments) and deletion.
type Activity struct {
	ID              snowflake.ID  `gorm:"primaryKey" json:"id"`
	ClientID        *snowflake.ID `gorm:"index" json:"client_id,omitempty"`
	ClientName      string        `gorm:"type:text;not null" json:"client_name"`
	Phone           string        `gorm:"type:text" json:"phone,omitempty"`
	Description     string        `gorm:"type:text;not null" json:"description"`
	Category        string        `gorm:"type:text;not null" json:"category"`
	Quantity        int64         `gorm:"not null;default:1" json:"quantity"`
	UnitPrice       int64         `gorm:"not null" json:"unit_price"`
	TotalAmount     int64         `gorm:"not null" json:"total_amount"`
	PaidAmount      int64         `gorm:"not null;default:0" json:"paid_amount"`
	RemainingAmount int64         `gorm:"not null;default:0" json:"remaining_amount"`
	PaymentType     PaymentType   `gorm:"type:text;not null" json:"payment_type"`
	Duration        string        `gorm:"type:text" json:"duration,omitempty"`
	BookingID       *snowflake.ID `gorm:"index" json:"booking_id,omitempty"`
	ContractID      *snowflake.ID `gorm:"index" json:"contract_id,omitempty"`
	OccurredAt      time.Time     `gorm:"not null;index" json:"occurred_at"`
	CreatedAt       time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Activity) TableName() string { return "activities" }

// Settled reports whether an installment activity has paid off its balance.
func (a Activity) Settled() bool {
	return a.PaymentType == PaymentTypeInstallment && a.RemainingAmount == 0
}
