// Package testutil provides an in-memory database for package tests.
package testutil

import (
	"fmt"
	"testing"

	"football-league-api/packages/core/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// activeNameIndex mirrors the migration that keeps active team names unique.
const activeNameIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_teams_active_name ON teams (name) WHERE deleted_at IS NULL`

// NewDB opens a private in-memory sqlite database with the league schema.
// A single connection keeps every statement on the same memory database.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&models.Team{}, &models.Match{}); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	if err := db.Exec(activeNameIndex).Error; err != nil {
		t.Fatalf("index test database: %v", err)
	}
	return db
}
