package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/modiatoukalord/kheops-sub000/internal/activity"
	"github.com/modiatoukalord/kheops-sub000/internal/booking"
	"github.com/modiatoukalord/kheops-sub000/internal/catalog"
	"github.com/modiatoukalord/kheops-sub000/internal/clock"
	"github.com/modiatoukalord/kheops-sub000/internal/config"
	"github.com/modiatoukalord/kheops-sub000/internal/contract"
	"github.com/modiatoukalord/kheops-sub000/internal/events"
	"github.com/modiatoukalord/kheops-sub000/internal/installment"
	"github.com/modiatoukalord/kheops-sub000/internal/ledger"
	"github.com/modiatoukalord/kheops-sub000/internal/loyalty"
	"github.com/modiatoukalord/kheops-sub000/internal/migration"
	"github.com/modiatoukalord/kheops-sub000/internal/observability/logger"
	"github.com/modiatoukalord/kheops-sub000/internal/seed"
	"github.com/modiatoukalord/kheops-sub000/internal/server"
	"github.com/modiatoukalord/kheops-sub000/pkg/db"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var version = "dev"

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		clock.Module,

		fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := migration.RunMigrations(sqlDB); err != nil {
				return err
			}
			if cfg.SeedDefaultCategories {
				return seed.EnsureDefaultCategories(conn)
			}
			return nil
		}),

		events.Module,
		ledger.Module,
		catalog.Module,
		loyalty.Module,
		booking.Module,
		contract.Module,
		activity.Module,
		installment.Module,

		server.Module,
	)
	app.Run()
}

func registerSnowflake(cfg config.Config) (*snowflake.Node, error) {
	return snowflake.NewNode(cfg.NodeID)
}
