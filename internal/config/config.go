package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config carries the process-level settings for the KHEOPS API.
type Config struct {
	Environment           string
	HTTPAddr              string
	DatabaseDSN           string
	NodeID                int64
	SeedDefaultCategories bool
}

// IsProduction reports whether the process runs with production settings.
func (c Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), "production")
}

// Load reads configuration from the environment, with a best-effort .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Environment:           envOr("KHEOPS_ENV", "development"),
		HTTPAddr:              envOr("KHEOPS_HTTP_ADDR", ":8080"),
		DatabaseDSN:           envOr("KHEOPS_DATABASE_DSN", "host=localhost user=kheops password=kheops dbname=kheops port=5432 sslmode=disable"),
		NodeID:                1,
		SeedDefaultCategories: true,
	}

	if raw := strings.TrimSpace(os.Getenv("KHEOPS_NODE_ID")); raw != "" {
		nodeID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Config{}, err
		}
		cfg.NodeID = nodeID
	}

	if raw := strings.TrimSpace(os.Getenv("KHEOPS_SEED_CATEGORIES")); raw != "" {
		seed, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, err
		}
		cfg.SeedDefaultCategories = seed
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

var Module = fx.Module("config",
	fx.Provide(Load),
)
