package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/modiatoukalord/kheops-sub000/internal/catalog/domain"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestListOrdersByName(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc := newCatalogService(t, db)
	insertCatalogCategory(t, db, "Shooting Photo", 8, 35000)
	insertCatalogCategory(t, db, "Clip Vidéo", 25, 150000)

	categories, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(categories))
	}
	if categories[0].Name != "Clip Vidéo" || categories[1].Name != "Shooting Photo" {
		t.Fatalf("unexpected order: %s, %s", categories[0].Name, categories[1].Name)
	}
}

func TestListServesFromCache(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc := newCatalogService(t, db)
	insertCatalogCategory(t, db, "Mixage", 6, 25000)

	first, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("expected 1 category, got %d", len(first))
	}

	// A row added after the first read is invisible until the TTL lapses.
	insertCatalogCategory(t, db, "Mastering", 6, 30000)
	second, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(second) != 1 {
		t.Fatalf("expected cached result of 1 category, got %d", len(second))
	}
}

func TestFindCaseInsensitive(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc := newCatalogService(t, db)
	insertCatalogCategory(t, db, "Réservation Studio", 10, 50000)

	category, err := svc.Find(context.Background(), "réservation studio")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if category == nil {
		t.Fatal("expected a match")
	}
	if category.PointCost != 10 || category.UnitPrice != 50000 {
		t.Fatalf("unexpected pricing: points=%d price=%d", category.PointCost, category.UnitPrice)
	}
}

func TestFindMissReturnsNil(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc := newCatalogService(t, db)
	insertCatalogCategory(t, db, "Mixage", 6, 25000)

	category, err := svc.Find(context.Background(), "Inconnue")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if category != nil {
		t.Fatalf("expected nil for unknown category, got %+v", category)
	}

	category, err = svc.Find(context.Background(), "   ")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if category != nil {
		t.Fatalf("expected nil for blank name, got %+v", category)
	}
}

// --- helpers ---

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Exec(`CREATE TABLE IF NOT EXISTS activity_categories (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		point_cost BIGINT NOT NULL DEFAULT 0,
		unit_price BIGINT NOT NULL DEFAULT 0,
		icon TEXT,
		color TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`).Error; err != nil {
		t.Fatalf("create table: %v", err)
	}
	return db
}

func newCatalogService(t *testing.T, db *gorm.DB) catalogdomain.Service {
	t.Helper()
	return NewService(Params{DB: db, Log: zap.NewNop()})
}

var catalogTestNode *snowflake.Node

func insertCatalogCategory(t *testing.T, db *gorm.DB, name string, pointCost, unitPrice int64) {
	t.Helper()
	if catalogTestNode == nil {
		node, err := snowflake.NewNode(3)
		if err != nil {
			t.Fatalf("snowflake node: %v", err)
		}
		catalogTestNode = node
	}
	if err := db.Exec(
		`INSERT INTO activity_categories (id, name, point_cost, unit_price) VALUES (?, ?, ?, ?)`,
		catalogTestNode.Generate(), name, pointCost, unitPrice,
	).Error; err != nil {
		t.Fatalf("insert category: %v", err)
	}
}
