package persistence

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/budgetwise/backend/internal/integration/persistence/model"
)

// setupTestDB opens a fresh in-memory database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&model.CategoryModel{},
		&model.CategoryRuleModel{},
		&model.TransactionModel{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}
