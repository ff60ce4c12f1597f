package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gym_backoffice/internal/access"
	"gym_backoffice/internal/services"
	"gym_backoffice/internal/session"
	"gym_backoffice/pkg/utils"

	"github.com/gin-gonic/gin"
)

type fakeResolver map[string]access.Principal

func (f fakeResolver) ResolvePrincipal(role access.Role, username string) (*access.Principal, error) {
	p, ok := f[username]
	if !ok || p.Role != role {
		return nil, fmt.Errorf("%w: %s", services.ErrNotFound, username)
	}
	return &p, nil
}

func newTestRouter(t *testing.T, resolver PrincipalResolver) (*gin.Engine, *utils.TokenManager, *session.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := utils.NewTokenManager("middleware-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}
	revoked := session.NewMemoryStore()

	r := gin.New()
	api := r.Group("/api", AuthMiddleware(tokens, revoked, resolver))
	ok := func(c *gin.Context) { c.Status(http.StatusNoContent) }
	api.GET("/me", ok)
	api.GET("/sales", RequireCapability(access.CapSales), ok)
	api.POST("/backups", AdminOnly(), ok)
	return r, tokens, revoked
}

func issue(t *testing.T, tokens *utils.TokenManager, username string, role access.Role) (string, *utils.Claims) {
	t.Helper()
	raw, claims, err := tokens.GenerateAccessToken(username, string(role))
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	return raw, claims
}

func TestAuthMiddlewareAccessRules(t *testing.T) {
	resolver := fakeResolver{
		"admin":   {Role: access.RoleAdmin, Username: "admin"},
		"cashier": {Role: access.RoleStaff, Username: "cashier", Privileges: access.NewCapabilitySet(access.CapSales)},
		"trainer": {Role: access.RoleStaff, Username: "trainer", Privileges: access.NewCapabilitySet(access.CapMembers)},
	}
	r, tokens, _ := newTestRouter(t, resolver)

	adminToken, _ := issue(t, tokens, "admin", access.RoleAdmin)
	cashierToken, _ := issue(t, tokens, "cashier", access.RoleStaff)
	trainerToken, _ := issue(t, tokens, "trainer", access.RoleStaff)
	goneToken, _ := issue(t, tokens, "former", access.RoleStaff)

	tests := []struct {
		name   string
		method string
		path   string
		header string
		want   int
	}{
		{name: "missing header", method: http.MethodGet, path: "/api/me", want: http.StatusUnauthorized},
		{name: "malformed header", method: http.MethodGet, path: "/api/me", header: "Token " + adminToken, want: http.StatusUnauthorized},
		{name: "invalid token", method: http.MethodGet, path: "/api/me", header: "Bearer nope", want: http.StatusUnauthorized},
		{name: "deleted account", method: http.MethodGet, path: "/api/me", header: "Bearer " + goneToken, want: http.StatusUnauthorized},
		{name: "any account may read me", method: http.MethodGet, path: "/api/me", header: "Bearer " + trainerToken, want: http.StatusNoContent},
		{name: "staff with capability", method: http.MethodGet, path: "/api/sales", header: "Bearer " + cashierToken, want: http.StatusNoContent},
		{name: "staff without capability", method: http.MethodGet, path: "/api/sales", header: "Bearer " + trainerToken, want: http.StatusForbidden},
		{name: "admin bypasses capabilities", method: http.MethodGet, path: "/api/sales", header: "Bearer " + adminToken, want: http.StatusNoContent},
		{name: "admin only rejects staff", method: http.MethodPost, path: "/api/backups", header: "Bearer " + cashierToken, want: http.StatusForbidden},
		{name: "admin only allows admin", method: http.MethodPost, path: "/api/backups", header: "Bearer " + adminToken, want: http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestAuthMiddlewareRejectsRevokedToken(t *testing.T) {
	resolver := fakeResolver{"admin": {Role: access.RoleAdmin, Username: "admin"}}
	r, tokens, revoked := newTestRouter(t, resolver)
	raw, claims := issue(t, tokens, "admin", access.RoleAdmin)

	call := func() int {
		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		req.Header.Set("Authorization", "Bearer "+raw)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	if got := call(); got != http.StatusNoContent {
		t.Fatalf("before logout: status = %d", got)
	}
	if err := revoked.Revoke(context.Background(), claims.ID, claims.ExpiresAt.Time); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if got := call(); got != http.StatusUnauthorized {
		t.Errorf("after logout: status = %d, want 401", got)
	}
}
