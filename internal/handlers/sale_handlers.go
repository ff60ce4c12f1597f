package handlers

import (
	"net/http"

	"gym_backoffice/internal/models"
	"gym_backoffice/internal/services"
	"gym_backoffice/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SaleHandler holds the sale service.
type SaleHandler struct {
	saleService services.SaleService
}

// NewSaleHandler creates a new SaleHandler.
func NewSaleHandler(ss services.SaleService) *SaleHandler {
	return &SaleHandler{saleService: ss}
}

// RecordSale records a sale for the signed-in account. Either every line is
// fulfilled or nothing changes.
func (h *SaleHandler) RecordSale(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}

	var req services.RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "RecordSale")
		return
	}

	sale, err := h.saleService.RecordSale(principal, req)
	if err != nil {
		utils.LogError(err, "RecordSale: Error from saleService.RecordSale")
		respondServiceError(c, err, "Failed to record sale.")
		return
	}
	c.JSON(http.StatusCreated, sale)
}

// GetSales handles fetching sales with date and staff filters.
func (h *SaleHandler) GetSales(c *gin.Context) {
	var filters models.SaleFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		respondBindError(c, err, "GetSales")
		return
	}

	sales, err := h.saleService.GetSales(filters)
	if err != nil {
		utils.LogError(err, "GetSales: Error from saleService.GetSales")
		respondServiceError(c, err, "Failed to fetch sales.")
		return
	}
	c.JSON(http.StatusOK, sales)
}

func (h *SaleHandler) GetSaleByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "sale")
	if !ok {
		return
	}

	sale, err := h.saleService.GetSaleByID(id)
	if err != nil {
		utils.LogError(err, "GetSaleByID: Error from saleService.GetSaleByID for ID "+c.Param("id"))
		respondServiceError(c, err, "Failed to fetch sale.")
		return
	}
	c.JSON(http.StatusOK, sale)
}
