package handlers

import (
	"net/http"

	"gym_backoffice/internal/services"
	"gym_backoffice/pkg/utils"

	"github.com/gin-gonic/gin"
)

// PackageHandler holds the package service.
type PackageHandler struct {
	packageService services.PackageService
}

// NewPackageHandler creates a new PackageHandler.
func NewPackageHandler(ps services.PackageService) *PackageHandler {
	return &PackageHandler{packageService: ps}
}

func (h *PackageHandler) CreatePackage(c *gin.Context) {
	var req services.PackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "CreatePackage")
		return
	}

	pkg, err := h.packageService.CreatePackage(req)
	if err != nil {
		utils.LogError(err, "CreatePackage: Error from packageService.CreatePackage")
		respondServiceError(c, err, "Failed to create package.")
		return
	}
	c.JSON(http.StatusCreated, pkg)
}

func (h *PackageHandler) GetPackages(c *gin.Context) {
	packages, err := h.packageService.GetPackages()
	if err != nil {
		utils.LogError(err, "GetPackages: Error from packageService.GetPackages")
		respondServiceError(c, err, "Failed to fetch packages.")
		return
	}
	c.JSON(http.StatusOK, packages)
}

func (h *PackageHandler) GetPackageByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "package")
	if !ok {
		return
	}

	pkg, err := h.packageService.GetPackageByID(id)
	if err != nil {
		utils.LogError(err, "GetPackageByID: Error from packageService.GetPackageByID for ID "+c.Param("id"))
		respondServiceError(c, err, "Failed to fetch package.")
		return
	}
	c.JSON(http.StatusOK, pkg)
}

func (h *PackageHandler) UpdatePackage(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "package")
	if !ok {
		return
	}

	var req services.PackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "UpdatePackage")
		return
	}

	pkg, err := h.packageService.UpdatePackage(id, req)
	if err != nil {
		utils.LogError(err, "UpdatePackage: Error from packageService.UpdatePackage for ID "+c.Param("id"))
		respondServiceError(c, err, "Failed to update package.")
		return
	}
	c.JSON(http.StatusOK, pkg)
}

// DeletePackage refuses while members are enrolled on the package.
func (h *PackageHandler) DeletePackage(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "package")
	if !ok {
		return
	}

	if err := h.packageService.DeletePackage(id); err != nil {
		utils.LogError(err, "DeletePackage: Error from packageService.DeletePackage for ID "+c.Param("id"))
		respondServiceError(c, err, "Failed to delete package.")
		return
	}
	c.Status(http.StatusNoContent)
}
