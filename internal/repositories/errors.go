package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	// ErrNotFound is returned when a specific record is not found.
	ErrNotFound = errors.New("requested record not found")

	// ErrDatabaseError is returned for unexpected database errors.
	// It can be used to wrap more specific driver errors.
	ErrDatabaseError = errors.New("database error")

	// ErrDuplicateKey is returned when an insert/update violates a unique constraint.
	ErrDuplicateKey = errors.New("duplicate key value violates unique constraint")

	// ErrInvalidQuantity is returned when a stock change is zero or negative.
	ErrInvalidQuantity = errors.New("stock quantity must be positive")
)

// SQLExecutor is satisfied by *sqlx.DB and *sqlx.Tx.
// Every repository method takes one so callers decide the transaction boundary.
type SQLExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Get(dest interface{}, query string, args ...interface{}) error
	Select(dest interface{}, query string, args ...interface{}) error
}

// isDuplicateKey recognises unique violations from both supported drivers.
func isDuplicateKey(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Name() == "unique_violation"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return true
		case sqlite3.SQLITE_CONSTRAINT:
			return strings.Contains(liteErr.Error(), "UNIQUE constraint failed")
		}
	}
	return false
}

// wrapWriteErr maps a failed write to ErrDuplicateKey or ErrDatabaseError.
func wrapWriteErr(err error, action string) error {
	if isDuplicateKey(err) {
		return fmt.Errorf("%w: %s", ErrDuplicateKey, action)
	}
	return fmt.Errorf("%w: %s: %v", ErrDatabaseError, action, err)
}

// wrapGetErr maps sql.ErrNoRows to ErrNotFound.
func wrapGetErr(err error, action string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return fmt.Errorf("%w: %s: %v", ErrDatabaseError, action, err)
}

// requireAffected turns a zero-row update or delete into ErrNotFound.
func requireAffected(res sql.Result, action string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDatabaseError, action, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// likePattern builds a case-insensitive substring pattern for LOWER(col) LIKE.
func likePattern(term string) string {
	return "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
}
