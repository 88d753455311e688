// Package database handles database connections and migrations.
package database

import (
	"errors"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"ledgerlens/internal/config"
	"ledgerlens/internal/logger"
)

// Connect opens a PostgreSQL connection with a bounded connection pool.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	log := logger.Get()

	db, err := gorm.Open(postgres.Open(DSN(cfg)), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	log.Infow("Database connected",
		"host", cfg.DBHost,
		"database", cfg.DBName,
	)
	return db, nil
}

// Migrate applies all pending up migrations from the given directory.
func Migrate(cfg *config.Config, migrationsPath string) error {
	m, err := migrate.New("file://"+migrationsPath, URL(cfg))
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// Rollback reverts the most recent migration.
func Rollback(cfg *config.Config, migrationsPath string) error {
	m, err := migrate.New("file://"+migrationsPath, URL(cfg))
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
