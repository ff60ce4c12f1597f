package handlers

import (
	"net/http"
	"strings"

	"gym_backoffice/internal/services"
	"gym_backoffice/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AttendanceHandler serves member and staff attendance.
type AttendanceHandler struct {
	attendanceService services.AttendanceService
}

// NewAttendanceHandler creates a new AttendanceHandler.
func NewAttendanceHandler(as services.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: as}
}

func (h *AttendanceHandler) recordMember(c *gin.Context, action services.AttendanceAction) {
	memberID, ok := parseIDParam(c, "id", "member")
	if !ok {
		return
	}

	record, err := h.attendanceService.RecordMemberAttendance(memberID, action)
	if err != nil {
		utils.LogWarn(err, "RecordMemberAttendance: "+string(action)+" for member "+c.Param("id"))
		respondServiceError(c, err, "Failed to record attendance.")
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *AttendanceHandler) MemberCheckIn(c *gin.Context) {
	h.recordMember(c, services.ActionCheckIn)
}

func (h *AttendanceHandler) MemberCheckOut(c *gin.Context) {
	h.recordMember(c, services.ActionCheckOut)
}

// MarkMember checks the member in, or out when already checked in today.
func (h *AttendanceHandler) MarkMember(c *gin.Context) {
	h.recordMember(c, services.ActionMark)
}

// GetMemberAttendance lists records for ?date=YYYY-MM-DD, default today.
func (h *AttendanceHandler) GetMemberAttendance(c *gin.Context) {
	records, err := h.attendanceService.GetMemberAttendance(c.Query("date"))
	if err != nil {
		utils.LogError(err, "GetMemberAttendance: Error from attendanceService.GetMemberAttendance")
		respondServiceError(c, err, "Failed to fetch attendance.")
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *AttendanceHandler) recordStaff(c *gin.Context, action services.AttendanceAction) {
	username := strings.TrimSpace(c.Param("username"))

	record, err := h.attendanceService.RecordStaffAttendance(username, action)
	if err != nil {
		utils.LogWarn(err, "RecordStaffAttendance: "+string(action)+" for "+username)
		respondServiceError(c, err, "Failed to record attendance.")
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *AttendanceHandler) StaffCheckIn(c *gin.Context) {
	h.recordStaff(c, services.ActionCheckIn)
}

func (h *AttendanceHandler) StaffCheckOut(c *gin.Context) {
	h.recordStaff(c, services.ActionCheckOut)
}

func (h *AttendanceHandler) MarkStaff(c *gin.Context) {
	h.recordStaff(c, services.ActionMark)
}

func (h *AttendanceHandler) GetStaffAttendance(c *gin.Context) {
	records, err := h.attendanceService.GetStaffAttendance(c.Query("date"))
	if err != nil {
		utils.LogError(err, "GetStaffAttendance: Error from attendanceService.GetStaffAttendance")
		respondServiceError(c, err, "Failed to fetch attendance.")
		return
	}
	c.JSON(http.StatusOK, records)
}
