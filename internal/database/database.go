package database

import (
	"fmt"

	"gym_backoffice/pkg/utils"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"  // PostgreSQL driver
	_ "modernc.org/sqlite" // pure Go SQLite driver
)

// Supported values for DB_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Connect opens and pings the database, then applies the schema.
func Connect(driver, dsn string) (*sqlx.DB, error) {
	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("error connecting to %s database: %w", driver, err)
	}

	if driver == DriverSQLite {
		// SQLite allows one writer; a single connection also serializes our transactions.
		db.SetMaxOpenConns(1)
	}

	if err := ApplySchema(db); err != nil {
		db.Close()
		return nil, err
	}

	utils.LogInfo("Successfully connected to the database", map[string]interface{}{"driver": driver})
	return db, nil
}

// ApplySchema creates every table that does not exist yet.
func ApplySchema(db *sqlx.DB) error {
	for i, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("could not execute schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
