package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"sitereport/internal/service"
)

// SyncHandler serves the mobile sync protocol.
type SyncHandler struct {
	syncService service.SyncService
}

// NewSyncHandler creates a new sync handler.
func NewSyncHandler(syncService service.SyncService) *SyncHandler {
	return &SyncHandler{syncService: syncService}
}

// SyncDown godoc
// @Summary Download the caller's sync snapshot
// @Description Active projects plus the caller's 50 latest reports and visits.
// @Tags sync
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.SyncSnapshot
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /api/sync/down [get]
func (h *SyncHandler) SyncDown(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	snapshot, err := h.syncService.SyncDown(c.Request().Context(), user)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, snapshot)
}
