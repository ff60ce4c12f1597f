package handlers

import (
	"net/http"

	"gym_backoffice/internal/models"
	"gym_backoffice/internal/services"
	"gym_backoffice/pkg/utils"

	"github.com/gin-gonic/gin"
)

// MemberHandler holds the member service.
type MemberHandler struct {
	memberService services.MemberService
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(ms services.MemberService) *MemberHandler {
	return &MemberHandler{memberService: ms}
}

// EnrollMember handles the creation of a new member.
func (h *MemberHandler) EnrollMember(c *gin.Context) {
	var req services.MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "EnrollMember")
		return
	}

	member, err := h.memberService.EnrollMember(req)
	if err != nil {
		utils.LogError(err, "EnrollMember: Error from memberService.EnrollMember")
		respondServiceError(c, err, "Failed to enroll member.")
		return
	}
	c.JSON(http.StatusCreated, member)
}

// GetMembers lists members, optionally filtered by search text and status.
func (h *MemberHandler) GetMembers(c *gin.Context) {
	var filters models.MemberFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		respondBindError(c, err, "GetMembers")
		return
	}

	members, err := h.memberService.GetMembers(filters)
	if err != nil {
		utils.LogError(err, "GetMembers: Error from memberService.GetMembers")
		respondServiceError(c, err, "Failed to fetch members.")
		return
	}
	c.JSON(http.StatusOK, members)
}

// GetMemberByID handles fetching a single member.
func (h *MemberHandler) GetMemberByID(c *gin.Context) {
	memberID, ok := parseIDParam(c, "id", "member")
	if !ok {
		return
	}

	member, err := h.memberService.GetMemberByID(memberID)
	if err != nil {
		utils.LogError(err, "GetMemberByID: Error from memberService.GetMemberByID for ID "+c.Param("id"))
		respondServiceError(c, err, "Failed to fetch member.")
		return
	}
	c.JSON(http.StatusOK, member)
}

// UpdateMember handles editing a member.
func (h *MemberHandler) UpdateMember(c *gin.Context) {
	memberID, ok := parseIDParam(c, "id", "member")
	if !ok {
		return
	}

	var req services.MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "UpdateMember")
		return
	}

	member, err := h.memberService.UpdateMember(memberID, req)
	if err != nil {
		utils.LogError(err, "UpdateMember: Error from memberService.UpdateMember for ID "+c.Param("id"))
		respondServiceError(c, err, "Failed to update member.")
		return
	}
	c.JSON(http.StatusOK, member)
}

// DeleteMember handles deleting a member.
func (h *MemberHandler) DeleteMember(c *gin.Context) {
	memberID, ok := parseIDParam(c, "id", "member")
	if !ok {
		return
	}

	if err := h.memberService.DeleteMember(memberID); err != nil {
		utils.LogError(err, "DeleteMember: Error from memberService.DeleteMember for ID "+c.Param("id"))
		respondServiceError(c, err, "Failed to delete member.")
		return
	}
	c.Status(http.StatusNoContent)
}
