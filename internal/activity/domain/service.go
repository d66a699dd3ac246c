package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

// CheckoutItem is one line of a multi-item checkout. Amount is computed by
// the caller; the store validates quantity * unit price consistency.
type CheckoutItem struct {
	Description string
	Category    string
	Quantity    int64
	UnitPrice   int64
	Amount      int64
}

// CheckoutRequest creates one activity per item, all sharing client identity,
// payment type and timestamp.
type CheckoutRequest struct {
	ClientID   *snowflake.ID
	ClientName string
	Phone      string

	PaymentType PaymentType
	// PaidAmount is the initial payment per line item for installment plans.
	PaidAmount int64

	// Optional HH:MM pair; an unusable range simply omits the duration.
	StartTime string
	EndTime   string

	ContractID *snowflake.ID
	BookingID  *snowflake.ID

	Items []CheckoutItem
}

// Filter narrows List results. Search matches client name and description
// case-insensitively; Date matches the same calendar day.
type Filter struct {
	Search string
	Date   *time.Time
}

// Service is the activity store.
type Service interface {
	Checkout(ctx context.Context, req CheckoutRequest) ([]Activity, error)
	Delete(ctx context.Context, id snowflake.ID) error
	CancelBookingPayment(ctx context.Context, bookingID snowflake.ID) error
	List(ctx context.Context, filter Filter) ([]Activity, error)
	TotalRevenue(ctx context.Context) (int64, error)
}

var (
	ErrInvalidClientName  = errors.New("invalid_client_name")
	ErrClientRequired     = errors.New("client_required")
	ErrEmptyItems         = errors.New("empty_items")
	ErrInvalidQuantity    = errors.New("invalid_quantity")
	ErrInvalidUnitPrice   = errors.New("invalid_unit_price")
	ErrAmountMismatch     = errors.New("amount_mismatch")
	ErrInvalidPaymentType = errors.New("invalid_payment_type")
	ErrInvalidPaidAmount  = errors.New("invalid_paid_amount")
	ErrUnknownCategory    = errors.New("unknown_category")
	ErrActivityNotFound   = errors.New("activity_not_found")
	ErrNothingToCancel    = errors.New("nothing_to_cancel")
)
