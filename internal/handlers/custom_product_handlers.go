package handlers

import (
	"net/http"

	"gym_backoffice/internal/services"
	"gym_backoffice/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CustomProductHandler holds the custom product service.
type CustomProductHandler struct {
	productService services.CustomProductService
}

// NewCustomProductHandler creates a new CustomProductHandler.
func NewCustomProductHandler(ps services.CustomProductService) *CustomProductHandler {
	return &CustomProductHandler{productService: ps}
}

// DefineCustomProduct costs a product from its ingredients and stores it.
func (h *CustomProductHandler) DefineCustomProduct(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}

	var req services.DefineCustomProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "DefineCustomProduct")
		return
	}

	product, err := h.productService.DefineCustomProduct(principal, req)
	if err != nil {
		utils.LogError(err, "DefineCustomProduct: Error from productService.DefineCustomProduct")
		respondServiceError(c, err, "Failed to create custom product.")
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *CustomProductHandler) GetCustomProducts(c *gin.Context) {
	products, err := h.productService.GetCustomProducts()
	if err != nil {
		utils.LogError(err, "GetCustomProducts: Error from productService.GetCustomProducts")
		respondServiceError(c, err, "Failed to fetch custom products.")
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *CustomProductHandler) GetCustomProductByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "custom product")
	if !ok {
		return
	}

	product, err := h.productService.GetCustomProductByID(id)
	if err != nil {
		utils.LogError(err, "GetCustomProductByID: Error from productService.GetCustomProductByID for ID "+c.Param("id"))
		respondServiceError(c, err, "Failed to fetch custom product.")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *CustomProductHandler) DeleteCustomProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "custom product")
	if !ok {
		return
	}

	if err := h.productService.DeleteCustomProduct(id); err != nil {
		utils.LogError(err, "DeleteCustomProduct: Error from productService.DeleteCustomProduct for ID "+c.Param("id"))
		respondServiceError(c, err, "Failed to delete custom product.")
		return
	}
	c.Status(http.StatusNoContent)
}
