// Package testhelpers opens throwaway databases for package tests.
package testhelpers

import (
	"testing"
	"time"

	"gym_backoffice/internal/database"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// SetupTestDB returns an in-memory SQLite database with the schema applied.
// The database lives as long as its single connection, which is closed at
// the end of the test.
func SetupTestDB(tb testing.TB) *sqlx.DB {
	tb.Helper()

	db, err := sqlx.Open(database.DriverSQLite, "file::memory:")
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := database.ApplySchema(db); err != nil {
		db.Close()
		tb.Fatalf("apply schema: %v", err)
	}
	tb.Cleanup(func() { db.Close() })
	return db
}

// FixedClock returns a clock function pinned to t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
