package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"gym_backoffice/internal/access"
	"gym_backoffice/internal/middleware"
	"gym_backoffice/internal/services"
	"gym_backoffice/pkg/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps the service error kinds to HTTP responses.
// failure is the message used for unexpected errors.
func respondServiceError(c *gin.Context, err error, failure string) {
	var stockErr *services.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeInsufficientStock, "Insufficient stock.", stockErr.Error()))
	case errors.Is(err, services.ErrInvalidState):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeInvalidState, "Action not allowed in the current state.", err.Error()))
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Resource not found.", err.Error()))
	case errors.Is(err, services.ErrDuplicateUsername):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Username already exists.", err.Error()))
	case errors.Is(err, services.ErrDuplicateName):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Name already exists.", err.Error()))
	case errors.Is(err, services.ErrInUse):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Record is still in use.", err.Error()))
	case errors.Is(err, services.ErrValidation):
		utils.RespondValidationFailed(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid username or password.", ""))
	default:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, failure, "Internal error"))
	}
}

func respondBindError(c *gin.Context, err error, op string) {
	utils.LogError(err, op+": Failed to bind request")
	utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
}

// parseIDParam reads a numeric path parameter, answering 400 when it is not one.
func parseIDParam(c *gin.Context, name, what string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid "+what+" ID format.", err.Error()))
		return 0, false
	}
	return id, true
}

// principalOrAbort fetches the caller. Routes using it sit behind AuthMiddleware.
func principalOrAbort(c *gin.Context) (access.Principal, bool) {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Authentication required", "Log in at "+middleware.LoginPath))
	}
	return principal, ok
}
