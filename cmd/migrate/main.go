// Command migrate applies or rolls back database migrations.
//
// Usage:
//
//	migrate up      apply all pending migrations
//	migrate down    roll back the most recent migration
package main

import (
	"os"

	"ledgerlens/internal/config"
	"ledgerlens/internal/database"
	"ledgerlens/internal/logger"
)

const migrationsPath = "migrations"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger.Init("development")
	defer logger.Sync()
	log := logger.Get()

	direction := "up"
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}

	switch direction {
	case "up":
		if err := database.Migrate(cfg, migrationsPath); err != nil {
			log.Fatalw("migration failed", "error", err)
		}
		log.Infow("migrations applied")
	case "down":
		if err := database.Rollback(cfg, migrationsPath); err != nil {
			log.Fatalw("rollback failed", "error", err)
		}
		log.Infow("last migration rolled back")
	default:
		log.Fatalw("unknown direction", "direction", direction)
	}
}
