package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	activitydomain "github.com/modiatoukalord/kheops-sub000/internal/activity/domain"
	bookingdomain "github.com/modiatoukalord/kheops-sub000/internal/booking/domain"
	catalogdomain "github.com/modiatoukalord/kheops-sub000/internal/catalog/domain"
	"github.com/modiatoukalord/kheops-sub000/internal/clock"
	contractdomain "github.com/modiatoukalord/kheops-sub000/internal/contract/domain"
	"github.com/modiatoukalord/kheops-sub000/internal/events"
	ledgerdomain "github.com/modiatoukalord/kheops-sub000/internal/ledger/domain"
	loyaltydomain "github.com/modiatoukalord/kheops-sub000/internal/loyalty/domain"
	"github.com/modiatoukalord/kheops-sub000/internal/observability/logger"
	"github.com/modiatoukalord/kheops-sub000/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Clock       clock.Clock
	LedgerSvc   ledgerdomain.Service
	LoyaltySvc  loyaltydomain.Service
	CatalogSvc  catalogdomain.Service
	BookingSvc  bookingdomain.Service
	ContractSvc contractdomain.Service
	Outbox      *events.Outbox
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	clock       clock.Clock
	ledgerSvc   ledgerdomain.Service
	loyaltySvc  loyaltydomain.Service
	catalogSvc  catalogdomain.Service
	bookingSvc  bookingdomain.Service
	contractSvc contractdomain.Service
	outbox      *events.Outbox
}

func NewService(p Params) activitydomain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("activity.service"),
		genID:       p.GenID,
		clock:       p.Clock,
		ledgerSvc:   p.LedgerSvc,
		loyaltySvc:  p.LoyaltySvc,
		catalogSvc:  p.CatalogSvc,
		bookingSvc:  p.BookingSvc,
		contractSvc: p.ContractSvc,
		outbox:      p.Outbox,
	}
}

// Checkout creates one activity per item plus its ledger side effects in a
// single database transaction: either the whole checkout lands or none of it.
func (s *Service) Checkout(ctx context.Context, req activitydomain.CheckoutRequest) ([]activitydomain.Activity, error) {
	if err := activitydomain.ValidateCheckout(req); err != nil {
		return nil, err
	}

	occurredAt := s.clock.Now()
	duration := formatDuration(req.StartTime, req.EndTime)
	clientName := strings.TrimSpace(req.ClientName)

	var created []activitydomain.Activity
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.PaymentType == activitydomain.PaymentTypePoints {
			if err := s.settleWithPoints(ctx, tx, req, clientName, occurredAt); err != nil {
				return err
			}
		}

		for _, item := range req.Items {
			record, err := s.createActivity(ctx, tx, req, item, clientName, duration, occurredAt)
			if err != nil {
				return err
			}
			created = append(created, record)
		}

		if req.ContractID != nil {
			if err := s.contractSvc.MarkPaidTx(ctx, tx, *req.ContractID); err != nil {
				return err
			}
		}
		if req.BookingID != nil {
			if err := s.bookingSvc.UpdateStatusTx(ctx, tx, *req.BookingID, bookingdomain.StatusPaid); err != nil {
				return err
			}
		}

		return s.outbox.PublishTx(ctx, tx, events.Event{
			Type: events.TypeActivityCheckout,
			Payload: map[string]any{
				"client_name":  clientName,
				"payment_type": string(req.PaymentType),
				"items":        len(created),
				"total_amount": sumItemAmounts(req.Items),
			},
			DedupeKey: checkoutDedupeKey(created),
		})
	})
	if err != nil {
		return nil, err
	}

	metrics.Ledger().IncCheckout(string(req.PaymentType), len(created))
	s.log.Info("checkout completed",
		zap.String("client_name", clientName),
		zap.String("phone", logger.MaskPhone(req.Phone)),
		zap.String("payment_type", string(req.PaymentType)),
		zap.Int("items", len(created)),
	)
	return created, nil
}

func (s *Service) createActivity(
	ctx context.Context,
	tx *gorm.DB,
	req activitydomain.CheckoutRequest,
	item activitydomain.CheckoutItem,
	clientName string,
	duration string,
	occurredAt time.Time,
) (activitydomain.Activity, error) {
	paid, remaining := settleAmounts(req.PaymentType, req.PaidAmount, item.Amount)

	record := activitydomain.Activity{
		ID:              s.genID.Generate(),
		ClientID:        req.ClientID,
		ClientName:      clientName,
		Phone:           strings.TrimSpace(req.Phone),
		Description:     strings.TrimSpace(item.Description),
		Category:        strings.TrimSpace(item.Category),
		Quantity:        item.Quantity,
		UnitPrice:       item.UnitPrice,
		TotalAmount:     item.Amount,
		PaidAmount:      paid,
		RemainingAmount: remaining,
		PaymentType:     req.PaymentType,
		Duration:        duration,
		BookingID:       req.BookingID,
		ContractID:      req.ContractID,
		OccurredAt:      occurredAt,
	}
	if err := tx.WithContext(ctx).Create(&record).Error; err != nil {
		return activitydomain.Activity{}, err
	}

	// Points checkouts book a single expense entry instead (settleWithPoints);
	// a zero initial installment moves no money and books nothing.
	if req.PaymentType != activitydomain.PaymentTypePoints && paid > 0 {
		if _, err := s.ledgerSvc.AddTx(ctx, tx, ledgerdomain.Entry{
			OccurredAt:  occurredAt,
			Description: fmt.Sprintf("%s - %s", record.Description, clientName),
			Type:        ledgerdomain.TransactionTypeRevenue,
			Category:    record.Category,
			Amount:      paid,
		}); err != nil {
			return activitydomain.Activity{}, err
		}
	}
	return record, nil
}

// settleAmounts derives paid/remaining so the payment-type invariants hold.
func settleAmounts(paymentType activitydomain.PaymentType, paidAmount, total int64) (int64, int64) {
	if paymentType == activitydomain.PaymentTypeInstallment {
		return paidAmount, total - paidAmount
	}
	return total, 0
}

func (s *Service) settleWithPoints(
	ctx context.Context,
	tx *gorm.DB,
	req activitydomain.CheckoutRequest,
	clientName string,
	occurredAt time.Time,
) error {
	cost, err := s.pointCost(ctx, req.Items)
	if err != nil {
		return err
	}

	if err := s.loyaltySvc.DebitTx(ctx, tx, *req.ClientID, cost); err != nil {
		return err
	}

	// The forfeited monetary value is booked as one expense for the whole
	// checkout; point purchases never produce revenue entries.
	total := sumItemAmounts(req.Items)
	if total > 0 {
		if _, err := s.ledgerSvc.AddTx(ctx, tx, ledgerdomain.Entry{
			OccurredAt:  occurredAt,
			Description: fmt.Sprintf("Paiement en points - %s", clientName),
			Type:        ledgerdomain.TransactionTypeExpense,
			Category:    "Points de fidélité",
			Amount:      -total,
		}); err != nil {
			return err
		}
	}
	return nil
}

// pointCost sums pointCost(category) * quantity over the checkout. Unknown
// categories are rejected: a point purchase must reference priced reference
// data, not fall back to a free item.
func (s *Service) pointCost(ctx context.Context, items []activitydomain.CheckoutItem) (int64, error) {
	var cost int64
	for _, item := range items {
		category, err := s.catalogSvc.Find(ctx, item.Category)
		if err != nil {
			return 0, err
		}
		if category == nil {
			return 0, activitydomain.ErrUnknownCategory
		}
		cost += category.PointCost * item.Quantity
	}
	return cost, nil
}

// Delete removes the activity. Ledger transactions are the audit trail and
// are never rolled back with it. Removing the last activity of a booking
// puts that booking back to pending.
func (s *Service) Delete(ctx context.Context, id snowflake.ID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record activitydomain.Activity
		if err := tx.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return activitydomain.ErrActivityNotFound
			}
			return err
		}

		if err := tx.WithContext(ctx).Delete(&activitydomain.Activity{}, "id = ?", id).Error; err != nil {
			return err
		}

		if record.BookingID != nil {
			var remaining int64
			if err := tx.WithContext(ctx).
				Model(&activitydomain.Activity{}).
				Where("booking_id = ?", *record.BookingID).
				Count(&remaining).Error; err != nil {
				return err
			}
			if remaining == 0 {
				if err := s.bookingSvc.UpdateStatusTx(ctx, tx, *record.BookingID, bookingdomain.StatusPending); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.outbox.Publish(ctx, events.Event{
		Type:      events.TypeActivityDeleted,
		Payload:   map[string]any{"activity_id": id.String()},
		DedupeKey: "activity.deleted:" + id.String(),
	}); err != nil {
		s.log.Warn("failed to publish deletion event", zap.Error(err))
	}
	return nil
}

// CancelBookingPayment removes every activity linked to the booking and puts
// the booking back to pending. Past transactions remain untouched.
func (s *Service) CancelBookingPayment(ctx context.Context, bookingID snowflake.ID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.WithContext(ctx).Delete(&activitydomain.Activity{}, "booking_id = ?", bookingID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return activitydomain.ErrNothingToCancel
		}

		if err := s.bookingSvc.UpdateStatusTx(ctx, tx, bookingID, bookingdomain.StatusPending); err != nil {
			return err
		}

		return s.outbox.PublishTx(ctx, tx, events.Event{
			Type: events.TypeBookingCancelled,
			Payload: map[string]any{
				"booking_id": bookingID.String(),
				"activities": result.RowsAffected,
			},
			DedupeKey: "booking.payment_cancelled:" + bookingID.String(),
		})
	})
}

// List returns activities matching the filter, newest first.
func (s *Service) List(ctx context.Context, filter activitydomain.Filter) ([]activitydomain.Activity, error) {
	query := s.db.WithContext(ctx).Model(&activitydomain.Activity{})

	if search := strings.ToLower(strings.TrimSpace(filter.Search)); search != "" {
		like := "%" + search + "%"
		query = query.Where("LOWER(client_name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if filter.Date != nil {
		dayStart := filter.Date.UTC().Truncate(24 * time.Hour)
		query = query.Where("occurred_at >= ? AND occurred_at < ?", dayStart, dayStart.Add(24*time.Hour))
	}

	var records []activitydomain.Activity
	if err := query.Order("occurred_at DESC, id DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// TotalRevenue sums direct totals plus installment paid amounts. Points
// checkouts contribute nothing here; their value shows up as the forfeited
// expense entry in the transaction ledger.
func (s *Service) TotalRevenue(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(CASE payment_type
		          WHEN ? THEN total_amount
		          WHEN ? THEN paid_amount
		          ELSE 0 END), 0)
		 FROM activities`,
		string(activitydomain.PaymentTypeDirect),
		string(activitydomain.PaymentTypeInstallment),
	).Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

func sumItemAmounts(items []activitydomain.CheckoutItem) int64 {
	var total int64
	for _, item := range items {
		total += item.Amount
	}
	return total
}

func checkoutDedupeKey(created []activitydomain.Activity) string {
	if len(created) == 0 {
		return ""
	}
	return "activity.checkout:" + created[0].ID.String()
}
