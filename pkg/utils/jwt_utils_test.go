package utils

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	tokens, err := NewTokenManager("secret-one", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}

	raw, issued, err := tokens.GenerateAccessToken("desk", "staff")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := tokens.ValidateToken(raw)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Subject != "desk" || claims.Role != "staff" || claims.ID != issued.ID {
		t.Errorf("claims = %+v", claims)
	}
}

func TestValidateTokenRejects(t *testing.T) {
	tokens, err := NewTokenManager("secret-one", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}
	other, err := NewTokenManager("secret-two", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}
	foreign, _, err := other.GenerateAccessToken("admin", "admin")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not.a.token"},
		{name: "wrong secret", token: foreign},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tokens.ValidateToken(tt.token); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestNewTokenManagerRequiresSecret(t *testing.T) {
	if _, err := NewTokenManager("", time.Hour); err == nil {
		t.Fatal("expected error for empty secret")
	}
	tokens, err := NewTokenManager("s", 0)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}
	if tokens.TTL() != 12*time.Hour {
		t.Errorf("default ttl = %v, want 12h", tokens.TTL())
	}
}
