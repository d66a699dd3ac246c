package events

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RelayConfig tunes the outbox relay loop.
type RelayConfig struct {
	PollInterval time.Duration
	BatchSize    int
}

func (c RelayConfig) withDefaults() RelayConfig {
	if c.PollInterval <= 0 {
		c.PollInterval = 5 * time.Second
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 100
	}
	return c
}

type RelayParams struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	Config RelayConfig `optional:"true"`
}

// Relay drains unpublished outbox rows and hands them to downstream
// consumers. Delivery is currently the structured event log stream.
type Relay struct {
	db  *gorm.DB
	log *zap.Logger
	cfg RelayConfig
}

func NewRelay(p RelayParams) *Relay {
	return &Relay{
		db:  p.DB,
		log: p.Log.Named("events.relay"),
		cfg: p.Config.withDefaults(),
	}
}

type outboxRow struct {
	ID        snowflake.ID
	EventType string
	Payload   datatypes.JSONMap
	CreatedAt time.Time
}

// RunForever polls the outbox until the context is cancelled.
func (r *Relay) RunForever(ctx context.Context) {
	ticker := time.NewTicker(r.cfg.PollInterval)
	defer ticker.Stop()

	for {
		if _, err := r.RunOnce(ctx); err != nil {
			r.log.Warn("outbox relay run failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// RunOnce drains one batch and returns how many events were published.
func (r *Relay) RunOnce(ctx context.Context) (int, error) {
	if r.db == nil {
		return 0, errors.New("relay_unavailable")
	}

	published := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []outboxRow
		if err := tx.WithContext(ctx).Raw(
			`SELECT id, event_type, payload, created_at
			 FROM activity_events
			 WHERE published = false
			 ORDER BY id
			 LIMIT ?`,
			r.cfg.BatchSize,
		).Scan(&rows).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}

		now := time.Now().UTC()
		for _, row := range rows {
			r.log.Info("event",
				zap.String("event_id", row.ID.String()),
				zap.String("event_type", row.EventType),
				zap.Any("payload", map[string]any(row.Payload)),
			)
			result := tx.WithContext(ctx).Exec(
				`UPDATE activity_events
				 SET published = true, published_at = ?
				 WHERE id = ? AND published = false`,
				now,
				row.ID,
			)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected > 0 {
				published++
			}
		}
		return nil
	})
	if err != nil {
		return published, err
	}
	return published, nil
}
