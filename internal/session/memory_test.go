package session

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreRevocation(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	s := NewMemoryStore()
	s.now = func() time.Time { return now }

	if revoked, _ := s.IsRevoked(ctx, "a"); revoked {
		t.Fatal("unknown token reported revoked")
	}

	if err := s.Revoke(ctx, "a", now.Add(time.Hour)); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if revoked, _ := s.IsRevoked(ctx, "a"); !revoked {
		t.Fatal("revoked token not reported")
	}

	now = now.Add(2 * time.Hour)
	if revoked, _ := s.IsRevoked(ctx, "a"); revoked {
		t.Fatal("revocation should lapse once the token has expired")
	}
}

func TestMemoryStoreIgnoresExpiredTokens(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	if err := s.Revoke(ctx, "old", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if len(s.revoked) != 0 {
		t.Fatalf("expired token was stored: %v", s.revoked)
	}
}
