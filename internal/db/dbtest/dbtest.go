// Package dbtest provides an isolated, migrated SQLite database for tests.
package dbtest

import (
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/oggyb/match-service/internal/db"
)

var nameCleaner = strings.NewReplacer("/", "_", " ", "_", "#", "_")

// Open creates an in-memory database private to t and applies migrations.
// The pool is limited to one connection so the in-memory database outlives
// individual queries and concurrent callers are serialized.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", nameCleaner.Replace(t.Name()))
	database, err := gorm.Open(sqlite.Open(dsn), db.Options(logger.Discard))
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(database); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return database
}
