package middleware

import (
	"errors"
	"net/http"
	"strings"

	"gym_backoffice/internal/access"
	"gym_backoffice/internal/services"
	"gym_backoffice/internal/session"
	"gym_backoffice/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by AuthMiddleware.
const (
	ContextPrincipalKey = "principal"
	ContextClaimsKey    = "claims"
)

// LoginPath is where unauthenticated callers are pointed.
const LoginPath = "/api/v1/auth/login"

// PrincipalResolver loads the current account behind a token.
type PrincipalResolver interface {
	ResolvePrincipal(role access.Role, username string) (*access.Principal, error)
}

func unauthorized(c *gin.Context, message string) {
	utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, message, "Log in at "+LoginPath))
}

// AuthMiddleware creates a Gin middleware for JWT authentication.
// Privileges are read from the account on every request, so edits by an
// admin apply to tokens that were already issued.
func AuthMiddleware(tokens *utils.TokenManager, revoked session.Store, resolver PrincipalResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			unauthorized(c, "Invalid authorization header format. Use Bearer <token>")
			return
		}

		claims, err := tokens.ValidateToken(parts[1])
		if err != nil {
			utils.LogDebug("Rejected token", map[string]interface{}{"reason": err.Error()})
			unauthorized(c, "Invalid or expired token")
			return
		}

		isRevoked, err := revoked.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			utils.LogError(err, "AuthMiddleware: checking token revocation")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Could not verify session", ""))
			return
		}
		if isRevoked {
			unauthorized(c, "Session has ended")
			return
		}

		principal, err := resolver.ResolvePrincipal(access.Role(claims.Role), claims.Subject)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) || errors.Is(err, services.ErrInvalidCredentials) {
				unauthorized(c, "Account no longer exists")
				return
			}
			utils.LogError(err, "AuthMiddleware: resolving principal")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Could not load account", ""))
			return
		}

		c.Set(ContextPrincipalKey, *principal)
		c.Set(ContextClaimsKey, claims)
		c.Next()
	}
}

// CurrentPrincipal returns the principal set by AuthMiddleware.
func CurrentPrincipal(c *gin.Context) (access.Principal, bool) {
	v, exists := c.Get(ContextPrincipalKey)
	if !exists {
		return access.Principal{}, false
	}
	p, ok := v.(access.Principal)
	return p, ok
}

// CurrentClaims returns the token claims set by AuthMiddleware.
func CurrentClaims(c *gin.Context) (*utils.Claims, bool) {
	v, exists := c.Get(ContextClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*utils.Claims)
	return claims, ok
}

// RequireCapability denies the request unless the principal holds the
// capability. Admins hold every capability.
func RequireCapability(required access.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := CurrentPrincipal(c)
		if !ok {
			unauthorized(c, "Authentication required")
			return
		}
		if !principal.Can(required) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden,
				"You do not have permission to access this resource", "Required privilege: "+string(required)))
			return
		}
		c.Next()
	}
}

// AdminOnly denies the request unless the principal is an admin.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := CurrentPrincipal(c)
		if !ok {
			unauthorized(c, "Authentication required")
			return
		}
		if !principal.IsAdmin() {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden,
				"You do not have permission to access this resource", "Admin role required"))
			return
		}
		c.Next()
	}
}
