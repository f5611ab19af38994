// Package dbtest opens throwaway in-memory databases with the delivery schema
// for tests that exercise gorm code paths without a Postgres container.
package dbtest

import (
	"fmt"
	"io"
	"log/slog"
	"testing"

	"delivery-service/internal/adapters/out/postgres"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewSQLite returns a migrated in-memory database private to the test.
// Row locking clauses are dropped by the sqlite dialect; a single connection
// serializes transactions instead.
func NewSQLite(tb testing.TB) *gorm.DB {
	tb.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := postgres.OpenDialector(sqlite.Open(dsn), slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("sqlite handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = sqlDB.Close() })

	if err = postgres.Migrate(db); err != nil {
		tb.Fatalf("migrate: %v", err)
	}

	return db
}
