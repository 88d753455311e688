// Package testutil provides test helpers shared by service and handler tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"ledgerlens/internal/models"
)

var dbCounter int64

// allModels lists every model migrated into test databases.
var allModels = []any{
	&models.User{},
	&models.Category{},
	&models.Transaction{},
	&models.Employee{},
	&models.PayrollLog{},
	&models.CategorySummary{},
	&models.ImportRun{},
	&models.AuditLog{},
}

// SetupTestDB creates an isolated in-memory SQLite database with all
// tables migrated. The database is torn down when the test finishes.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := atomic.AddInt64(&dbCounter, 1)
	dsn := fmt.Sprintf("file:testdb_%d?mode=memory&cache=shared", n)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return db
}
