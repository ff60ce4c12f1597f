package handlers

import (
	"net/http"

	"gym_backoffice/pkg/utils"

	"github.com/gin-gonic/gin"
)

// GetMovements lists the stock ledger, newest first. With an :id path
// parameter or ?item_id= it is limited to one inventory item.
func (h *InventoryHandler) GetMovements(c *gin.Context) {
	var itemID *int64
	raw := c.Param("id")
	if raw == "" {
		raw = c.Query("item_id")
	}
	if raw != "" {
		id, err := utils.StrToInt64(raw)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid inventory item ID format.", err.Error()))
			return
		}
		itemID = &id
	}

	movements, err := h.inventoryService.GetMovements(itemID)
	if err != nil {
		utils.LogError(err, "GetMovements: Error from inventoryService.GetMovements")
		respondServiceError(c, err, "Failed to fetch stock movements.")
		return
	}
	c.JSON(http.StatusOK, movements)
}
