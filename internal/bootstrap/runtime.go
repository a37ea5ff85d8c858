// Package bootstrap establishes runtime dependencies (database, Redis,
// optional demo data) before the server starts serving.
package bootstrap

import (
	"fmt"

	"pinboard/internal/cache"
	"pinboard/internal/config"
	"pinboard/internal/database"
	"pinboard/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedDemoData populates a demo social mesh after migration. Only
	// honored outside production.
	SeedDemoData bool
}

// InitRuntime connects to DB and Redis and optionally seeds demo data.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Init Redis (may result in nil client if unreachable)
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedDemoData && cfg.Env != "production" {
		seeder, err := seed.NewSeeder(db)
		if err != nil {
			return nil, nil, fmt.Errorf("seeder init failed: %w", err)
		}
		if err := seeder.Run(seed.DefaultPlan()); err != nil {
			return nil, nil, fmt.Errorf("demo data seeding failed: %w", err)
		}
	}

	return db, r, nil
}
