package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/snowflake"
	activitydomain "github.com/modiatoukalord/kheops-sub000/internal/activity/domain"
	"github.com/modiatoukalord/kheops-sub000/internal/clock"
	contractdomain "github.com/modiatoukalord/kheops-sub000/internal/contract/domain"
	"github.com/modiatoukalord/kheops-sub000/internal/events"
	installmentdomain "github.com/modiatoukalord/kheops-sub000/internal/installment/domain"
	ledgerdomain "github.com/modiatoukalord/kheops-sub000/internal/ledger/domain"
	"github.com/modiatoukalord/kheops-sub000/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	Clock       clock.Clock
	LedgerSvc   ledgerdomain.Service
	ContractSvc contractdomain.Service
	Outbox      *events.Outbox
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	clock       clock.Clock
	ledgerSvc   ledgerdomain.Service
	contractSvc contractdomain.Service
	outbox      *events.Outbox
}

func NewService(p Params) installmentdomain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("installment.service"),
		clock:       p.Clock,
		ledgerSvc:   p.LedgerSvc,
		contractSvc: p.ContractSvc,
		outbox:      p.Outbox,
	}
}

// Record applies one installment. The balance move is a guarded update so
// paid + remaining == total holds no matter how calls interleave; an amount
// beyond the remaining balance changes nothing and reports overpayment.
func (s *Service) Record(ctx context.Context, activityID snowflake.ID, amount int64) error {
	if amount <= 0 {
		return installmentdomain.ErrInvalidAmount
	}

	now := s.clock.Now()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.WithContext(ctx).Exec(
			`UPDATE activities
			 SET paid_amount = paid_amount + ?,
			     remaining_amount = remaining_amount - ?,
			     updated_at = ?
			 WHERE id = ? AND payment_type = ? AND remaining_amount >= ?`,
			amount,
			amount,
			now,
			activityID,
			string(activitydomain.PaymentTypeInstallment),
			amount,
		)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return s.classifyRejection(ctx, tx, activityID)
		}

		var record activitydomain.Activity
		if err := tx.WithContext(ctx).First(&record, "id = ?", activityID).Error; err != nil {
			return err
		}

		if _, err := s.ledgerSvc.AddTx(ctx, tx, ledgerdomain.Entry{
			OccurredAt:  now,
			Description: fmt.Sprintf("Versement échéancier - %s (%s)", record.Description, record.ClientName),
			Type:        ledgerdomain.TransactionTypeRevenue,
			Category:    record.Category,
			Amount:      amount,
		}); err != nil {
			return err
		}

		// The guard above means remaining was > 0 before this call, so the
		// settle transition happens here at most once per activity.
		if record.Settled() && record.ContractID != nil {
			if err := s.contractSvc.MarkPaidTx(ctx, tx, *record.ContractID); err != nil {
				return err
			}
		}

		return s.outbox.PublishTx(ctx, tx, events.Event{
			Type: events.TypeInstallmentRecorded,
			Payload: map[string]any{
				"activity_id": activityID.String(),
				"amount":      amount,
				"remaining":   record.RemainingAmount,
			},
			DedupeKey: fmt.Sprintf("installment.recorded:%s:%d", activityID.String(), record.PaidAmount),
		})
	})
	if err != nil {
		return err
	}

	metrics.Ledger().IncInstallment()
	return nil
}

func (s *Service) classifyRejection(ctx context.Context, tx *gorm.DB, activityID snowflake.ID) error {
	var record activitydomain.Activity
	err := tx.WithContext(ctx).First(&record, "id = ?", activityID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return installmentdomain.ErrActivityNotFound
		}
		return err
	}
	if record.PaymentType != activitydomain.PaymentTypeInstallment {
		return installmentdomain.ErrNotInstallment
	}
	return installmentdomain.ErrOverpayment
}
