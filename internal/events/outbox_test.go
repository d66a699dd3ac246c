package events

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestPublishAndRelay(t *testing.T) {
	db := setupEventsTestDB(t)
	outbox := newTestOutbox(t, db)

	err := outbox.Publish(context.Background(), Event{
		Type:      TypeActivityCheckout,
		Payload:   map[string]any{"activity_id": "123", "items": 2},
		DedupeKey: "activity.checkout:123",
	})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}

	relay := NewRelay(RelayParams{DB: db, Log: zap.NewNop()})
	published, err := relay.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("relay run: %v", err)
	}
	if published != 1 {
		t.Fatalf("expected 1 published event, got %d", published)
	}

	// A second run finds nothing left.
	published, err = relay.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("relay run: %v", err)
	}
	if published != 0 {
		t.Fatalf("expected no events on second run, got %d", published)
	}
}

func TestPublishDedupesOnKey(t *testing.T) {
	db := setupEventsTestDB(t)
	outbox := newTestOutbox(t, db)

	event := Event{
		Type:      TypeInstallmentRecorded,
		Payload:   map[string]any{"activity_id": "42", "amount": 30000},
		DedupeKey: "installment.recorded:42:50000",
	}
	if err := outbox.Publish(context.Background(), event); err != nil {
		t.Fatalf("first publish: %v", err)
	}
	if err := outbox.Publish(context.Background(), event); err != nil {
		t.Fatalf("second publish: %v", err)
	}

	var count int64
	if err := db.Table("activity_events").Count(&count).Error; err != nil {
		t.Fatalf("count events: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 event after dedupe, got %d", count)
	}
}

func TestPublishWithoutDedupeKeyAlwaysInserts(t *testing.T) {
	db := setupEventsTestDB(t)
	outbox := newTestOutbox(t, db)

	for i := 0; i < 2; i++ {
		if err := outbox.Publish(context.Background(), Event{
			Type:    TypeActivityDeleted,
			Payload: map[string]any{"activity_id": "7"},
		}); err != nil {
			t.Fatalf("publish %d: %v", i, err)
		}
	}

	var count int64
	if err := db.Table("activity_events").Count(&count).Error; err != nil {
		t.Fatalf("count events: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 events without dedupe key, got %d", count)
	}
}

func TestPublishRejectsEmptyType(t *testing.T) {
	db := setupEventsTestDB(t)
	outbox := newTestOutbox(t, db)

	if err := outbox.Publish(context.Background(), Event{Type: "   "}); err == nil {
		t.Fatal("expected error for empty event type")
	}
}

func TestPublishTxRequiresTransaction(t *testing.T) {
	db := setupEventsTestDB(t)
	outbox := newTestOutbox(t, db)

	if err := outbox.PublishTx(context.Background(), nil, Event{Type: TypeActivityCheckout}); err == nil {
		t.Fatal("expected error for nil transaction")
	}
}

// --- helpers ---

func setupEventsTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Exec(`CREATE TABLE IF NOT EXISTS activity_events (
		id INTEGER PRIMARY KEY,
		event_type TEXT NOT NULL,
		payload TEXT,
		dedupe_key TEXT UNIQUE,
		published BOOLEAN NOT NULL DEFAULT FALSE,
		published_at DATETIME,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`).Error; err != nil {
		t.Fatalf("create table: %v", err)
	}
	return db
}

func newTestOutbox(t *testing.T, db *gorm.DB) *Outbox {
	t.Helper()
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	return NewOutbox(db, node)
}
