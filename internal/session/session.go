// Package session keeps the set of access tokens revoked by logout.
package session

import (
	"context"
	"time"
)

// Store remembers revoked token ids until the tokens would have expired anyway.
type Store interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
