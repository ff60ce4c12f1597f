package services

import (
	"errors"
	"fmt"
	"time"
)

// Error kinds surfaced by every business operation. Each one leaves the
// store unchanged; handlers map them to HTTP statuses.
var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrDuplicateName      = errors.New("name already exists")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInvalidState       = errors.New("invalid state")
	ErrValidation         = errors.New("validation error")
	ErrInUse              = errors.New("record is still referenced")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// InsufficientStockError names the item a sale could not be fulfilled from.
type InsufficientStockError struct {
	ItemID    int64
	ItemName  string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s (ID: %d). Requested: %d, Available: %d",
		e.ItemName, e.ItemID, e.Requested, e.Available)
}

// Unwrap lets errors.Is(err, ErrInsufficientStock) match.
func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// Clock returns the current time. Services take one so tests can pin dates.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}
