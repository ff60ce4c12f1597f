package handlers

import (
	"context"
	"net/http"

	"gym_backoffice/pkg/utils"

	"github.com/gin-gonic/gin"
)

// BackupRunner writes a backup and returns where it went.
type BackupRunner interface {
	Export(ctx context.Context) (string, error)
}

// BackupHandler triggers on-demand backups.
type BackupHandler struct {
	runner BackupRunner
}

// NewBackupHandler creates a new BackupHandler.
func NewBackupHandler(runner BackupRunner) *BackupHandler {
	return &BackupHandler{runner: runner}
}

func (h *BackupHandler) CreateBackup(c *gin.Context) {
	dir, err := h.runner.Export(c.Request.Context())
	if err != nil {
		utils.LogError(err, "CreateBackup: export failed")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create backup.", "Internal error"))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Backup created", "directory": dir})
}
