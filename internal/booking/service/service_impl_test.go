package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	bookingdomain "github.com/modiatoukalord/kheops-sub000/internal/booking/domain"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestUpdateStatus(t *testing.T) {
	db := setupBookingTestDB(t)
	svc, node := newBookingService(t, db)
	bookingID := insertTestBooking(t, db, node, bookingdomain.StatusConfirmed)

	if err := svc.UpdateStatus(context.Background(), bookingID, bookingdomain.StatusPaid); err != nil {
		t.Fatalf("update status: %v", err)
	}

	var status string
	if err := db.Raw(`SELECT status FROM bookings WHERE id = ?`, bookingID).Scan(&status).Error; err != nil {
		t.Fatalf("read status: %v", err)
	}
	if status != bookingdomain.StatusPaid {
		t.Fatalf("expected Payé, got %q", status)
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	db := setupBookingTestDB(t)
	svc, node := newBookingService(t, db)
	bookingID := insertTestBooking(t, db, node, bookingdomain.StatusPending)

	if err := svc.UpdateStatus(context.Background(), bookingID, "Annulé"); err != bookingdomain.ErrInvalidStatus {
		t.Fatalf("expected invalid_booking_status, got %v", err)
	}
}

func TestUpdateStatusUnknownBooking(t *testing.T) {
	db := setupBookingTestDB(t)
	svc, node := newBookingService(t, db)

	err := svc.UpdateStatus(context.Background(), node.Generate(), bookingdomain.StatusPaid)
	if err != bookingdomain.ErrBookingNotFound {
		t.Fatalf("expected booking_not_found, got %v", err)
	}
}

func TestUpdateStatusTxRequiresTransaction(t *testing.T) {
	db := setupBookingTestDB(t)
	svc, node := newBookingService(t, db)

	err := svc.UpdateStatusTx(context.Background(), nil, node.Generate(), bookingdomain.StatusPaid)
	if err != bookingdomain.ErrMissingTx {
		t.Fatalf("expected missing_transaction, got %v", err)
	}
}

// --- helpers ---

func setupBookingTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Exec(`CREATE TABLE IF NOT EXISTS bookings (
		id INTEGER PRIMARY KEY,
		client_name TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'En attente',
		starts_at DATETIME,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`).Error; err != nil {
		t.Fatalf("create table: %v", err)
	}
	return db
}

func newBookingService(t *testing.T, db *gorm.DB) (bookingdomain.Service, *snowflake.Node) {
	t.Helper()
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	return NewService(Params{DB: db, Log: zap.NewNop()}), node
}

func insertTestBooking(t *testing.T, db *gorm.DB, node *snowflake.Node, status string) snowflake.ID {
	t.Helper()
	id := node.Generate()
	if err := db.Exec(
		`INSERT INTO bookings (id, client_name, status) VALUES (?, 'Jean Dupont', ?)`,
		id, status,
	).Error; err != nil {
		t.Fatalf("insert booking: %v", err)
	}
	return id
}
