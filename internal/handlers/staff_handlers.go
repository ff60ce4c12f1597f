package handlers

import (
	"net/http"

	"gym_backoffice/internal/services"
	"gym_backoffice/pkg/utils"

	"github.com/gin-gonic/gin"
)

// StaffHandler holds the staff service.
type StaffHandler struct {
	staffService services.StaffService
}

// NewStaffHandler creates a new StaffHandler.
func NewStaffHandler(ss services.StaffService) *StaffHandler {
	return &StaffHandler{staffService: ss}
}

// CreateStaffAccount handles creating a staff login with its privileges.
func (h *StaffHandler) CreateStaffAccount(c *gin.Context) {
	var req services.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "CreateStaffAccount")
		return
	}

	staff, err := h.staffService.CreateStaffAccount(req)
	if err != nil {
		utils.LogError(err, "CreateStaffAccount: Error from staffService.CreateStaffAccount")
		respondServiceError(c, err, "Failed to create staff account.")
		return
	}
	c.JSON(http.StatusCreated, staff)
}

func (h *StaffHandler) GetStaff(c *gin.Context) {
	staff, err := h.staffService.GetStaff(c.Query("search"))
	if err != nil {
		utils.LogError(err, "GetStaff: Error from staffService.GetStaff")
		respondServiceError(c, err, "Failed to fetch staff.")
		return
	}
	c.JSON(http.StatusOK, staff)
}

func (h *StaffHandler) GetStaffByUsername(c *gin.Context) {
	staff, err := h.staffService.GetStaffByUsername(c.Param("username"))
	if err != nil {
		utils.LogError(err, "GetStaffByUsername: Error from staffService.GetStaffByUsername for "+c.Param("username"))
		respondServiceError(c, err, "Failed to fetch staff account.")
		return
	}
	c.JSON(http.StatusOK, staff)
}

// UpdateStaffAccount edits profile fields and privileges. The username and
// password are not changed here.
func (h *StaffHandler) UpdateStaffAccount(c *gin.Context) {
	var req services.UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "UpdateStaffAccount")
		return
	}

	staff, err := h.staffService.UpdateStaffAccount(c.Param("username"), req)
	if err != nil {
		utils.LogError(err, "UpdateStaffAccount: Error from staffService.UpdateStaffAccount for "+c.Param("username"))
		respondServiceError(c, err, "Failed to update staff account.")
		return
	}
	c.JSON(http.StatusOK, staff)
}

func (h *StaffHandler) DeleteStaffAccount(c *gin.Context) {
	if err := h.staffService.DeleteStaffAccount(c.Param("username")); err != nil {
		utils.LogError(err, "DeleteStaffAccount: Error from staffService.DeleteStaffAccount for "+c.Param("username"))
		respondServiceError(c, err, "Failed to delete staff account.")
		return
	}
	c.Status(http.StatusNoContent)
}
