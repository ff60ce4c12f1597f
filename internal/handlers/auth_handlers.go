package handlers

import (
	"net/http"

	"gym_backoffice/internal/middleware"
	"gym_backoffice/internal/models"
	"gym_backoffice/internal/services"
	"gym_backoffice/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service.
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as services.AuthService) *AuthHandler {
	return &AuthHandler{authService: as}
}

// Login handles admin and staff login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Login")
		return
	}

	resp, err := h.authService.Login(req)
	if err != nil {
		utils.LogWarn(err, "Login: failed attempt for "+req.Username)
		respondServiceError(c, err, "Login failed.")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout revokes the token used for this request.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Authentication required", ""))
		return
	}
	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		utils.LogError(err, "Logout: Error from authService.Logout")
		respondServiceError(c, err, "Failed to log out.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// GetCurrentUser returns the caller's role, name and privileges.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, principal)
}

// ChangePassword lets any signed-in account change its own password.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var req services.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "ChangePassword")
		return
	}
	if err := h.authService.ChangePassword(principal, req); err != nil {
		utils.LogError(err, "ChangePassword: Error from authService.ChangePassword")
		respondServiceError(c, err, "Failed to change password.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}
