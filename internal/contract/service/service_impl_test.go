package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	contractdomain "github.com/modiatoukalord/kheops-sub000/internal/contract/domain"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMarkPaid(t *testing.T) {
	db := setupContractTestDB(t)
	svc, node := newContractService(t, db)
	contractID := insertOpenContract(t, db, node)

	if err := svc.MarkPaid(context.Background(), contractID); err != nil {
		t.Fatalf("mark paid: %v", err)
	}

	status, paid := contractState(t, db, contractID)
	if status != contractdomain.StatusPaid || !paid {
		t.Fatalf("expected Payé with paid_at set, got status=%q paid=%v", status, paid)
	}
}

func TestMarkPaidIsIdempotent(t *testing.T) {
	db := setupContractTestDB(t)
	svc, node := newContractService(t, db)
	contractID := insertOpenContract(t, db, node)

	if err := svc.MarkPaid(context.Background(), contractID); err != nil {
		t.Fatalf("first mark paid: %v", err)
	}
	var firstPaidAt string
	if err := db.Raw(`SELECT paid_at FROM contracts WHERE id = ?`, contractID).Scan(&firstPaidAt).Error; err != nil {
		t.Fatalf("read paid_at: %v", err)
	}

	// A second call succeeds without moving the payment timestamp.
	if err := svc.MarkPaid(context.Background(), contractID); err != nil {
		t.Fatalf("second mark paid: %v", err)
	}
	var secondPaidAt string
	if err := db.Raw(`SELECT paid_at FROM contracts WHERE id = ?`, contractID).Scan(&secondPaidAt).Error; err != nil {
		t.Fatalf("read paid_at: %v", err)
	}
	if firstPaidAt != secondPaidAt {
		t.Fatalf("paid_at moved on repeat call: %q then %q", firstPaidAt, secondPaidAt)
	}
}

func TestMarkPaidUnknownContract(t *testing.T) {
	db := setupContractTestDB(t)
	svc, node := newContractService(t, db)

	if err := svc.MarkPaid(context.Background(), node.Generate()); err != contractdomain.ErrContractNotFound {
		t.Fatalf("expected contract_not_found, got %v", err)
	}
}

func TestMarkPaidTxRequiresTransaction(t *testing.T) {
	db := setupContractTestDB(t)
	svc, node := newContractService(t, db)

	if err := svc.MarkPaidTx(context.Background(), nil, node.Generate()); err != contractdomain.ErrMissingTx {
		t.Fatalf("expected missing_transaction, got %v", err)
	}
}

// --- helpers ---

func setupContractTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Exec(`CREATE TABLE IF NOT EXISTS contracts (
		id INTEGER PRIMARY KEY,
		client_name TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'En cours',
		paid_at DATETIME,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`).Error; err != nil {
		t.Fatalf("create table: %v", err)
	}
	return db
}

func newContractService(t *testing.T, db *gorm.DB) (contractdomain.Service, *snowflake.Node) {
	t.Helper()
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	return NewService(Params{DB: db, Log: zap.NewNop()}), node
}

func insertOpenContract(t *testing.T, db *gorm.DB, node *snowflake.Node) snowflake.ID {
	t.Helper()
	id := node.Generate()
	if err := db.Exec(`INSERT INTO contracts (id, client_name) VALUES (?, 'Jean Dupont')`, id).Error; err != nil {
		t.Fatalf("insert contract: %v", err)
	}
	return id
}

func contractState(t *testing.T, db *gorm.DB, id snowflake.ID) (string, bool) {
	t.Helper()
	var row struct {
		Status string
		Paid   int64
	}
	if err := db.Raw(
		`SELECT status, CASE WHEN paid_at IS NULL THEN 0 ELSE 1 END AS paid FROM contracts WHERE id = ?`,
		id,
	).Scan(&row).Error; err != nil {
		t.Fatalf("read contract: %v", err)
	}
	return row.Status, row.Paid == 1
}
