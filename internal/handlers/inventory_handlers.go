package handlers

import (
	"net/http"

	"gym_backoffice/internal/services"
	"gym_backoffice/pkg/utils"

	"github.com/gin-gonic/gin"
)

// InventoryHandler holds the inventory service.
type InventoryHandler struct {
	inventoryService services.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(is services.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: is}
}

func (h *InventoryHandler) CreateItem(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}

	var req services.InventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "CreateItem")
		return
	}

	item, err := h.inventoryService.CreateItem(principal, req)
	if err != nil {
		utils.LogError(err, "CreateItem: Error from inventoryService.CreateItem")
		respondServiceError(c, err, "Failed to create inventory item.")
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *InventoryHandler) GetItems(c *gin.Context) {
	items, err := h.inventoryService.GetItems()
	if err != nil {
		utils.LogError(err, "GetItems: Error from inventoryService.GetItems")
		respondServiceError(c, err, "Failed to fetch inventory.")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *InventoryHandler) GetItemByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "inventory item")
	if !ok {
		return
	}

	item, err := h.inventoryService.GetItemByID(id)
	if err != nil {
		utils.LogError(err, "GetItemByID: Error from inventoryService.GetItemByID for ID "+c.Param("id"))
		respondServiceError(c, err, "Failed to fetch inventory item.")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *InventoryHandler) UpdateItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "inventory item")
	if !ok {
		return
	}

	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}

	var req services.InventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "UpdateItem")
		return
	}

	item, err := h.inventoryService.UpdateItem(principal, id, req)
	if err != nil {
		utils.LogError(err, "UpdateItem: Error from inventoryService.UpdateItem for ID "+c.Param("id"))
		respondServiceError(c, err, "Failed to update inventory item.")
		return
	}
	c.JSON(http.StatusOK, item)
}

// Restock adds servings and logs a restock movement.
func (h *InventoryHandler) Restock(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "inventory item")
	if !ok {
		return
	}

	var req services.RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Restock")
		return
	}

	item, err := h.inventoryService.Restock(principal, id, req)
	if err != nil {
		utils.LogError(err, "Restock: Error from inventoryService.Restock for ID "+c.Param("id"))
		respondServiceError(c, err, "Failed to restock item.")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *InventoryHandler) DeleteItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "inventory item")
	if !ok {
		return
	}

	if err := h.inventoryService.DeleteItem(id); err != nil {
		utils.LogError(err, "DeleteItem: Error from inventoryService.DeleteItem for ID "+c.Param("id"))
		respondServiceError(c, err, "Failed to delete inventory item.")
		return
	}
	c.Status(http.StatusNoContent)
}
