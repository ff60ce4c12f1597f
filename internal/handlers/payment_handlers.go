package handlers

import (
	"net/http"

	"gym_backoffice/internal/models"
	"gym_backoffice/internal/services"
	"gym_backoffice/pkg/utils"

	"github.com/gin-gonic/gin"
)

// PaymentHandler holds the payment service.
type PaymentHandler struct {
	paymentService services.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(ps services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: ps}
}

// RecordPayment appends a payment and marks the member paid.
func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}

	var req services.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "RecordPayment")
		return
	}

	payment, err := h.paymentService.RecordPayment(principal, req)
	if err != nil {
		utils.LogError(err, "RecordPayment: Error from paymentService.RecordPayment")
		respondServiceError(c, err, "Failed to record payment.")
		return
	}
	c.JSON(http.StatusCreated, payment)
}

// GetPayments lists the ledger, filterable by member_id and month (YYYY-MM).
func (h *PaymentHandler) GetPayments(c *gin.Context) {
	var filters models.PaymentFilters
	if memberIDStr := c.Query("member_id"); memberIDStr != "" {
		id, err := utils.StrToInt64(memberIDStr)
		if err != nil {
			utils.RespondValidationFailed(c, "member_id must be a number")
			return
		}
		filters.MemberID = &id
	}
	filters.Month = c.Query("month")

	payments, err := h.paymentService.GetPayments(filters)
	if err != nil {
		utils.LogError(err, "GetPayments: Error from paymentService.GetPayments")
		respondServiceError(c, err, "Failed to fetch payments.")
		return
	}
	c.JSON(http.StatusOK, payments)
}
