package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"sitereport/internal/bootstrap"
)

// BootstrapRunner runs database bootstrap.
type BootstrapRunner interface {
	Run(ctx context.Context) *bootstrap.Result
}

// BootstrapHandler exposes bootstrap as an administrative endpoint.
type BootstrapHandler struct {
	runner BootstrapRunner
}

// NewBootstrapHandler creates a new bootstrap handler.
func NewBootstrapHandler(runner BootstrapRunner) *BootstrapHandler {
	return &BootstrapHandler{runner: runner}
}

// BootstrapFailure is returned when the schema could not be created.
type BootstrapFailure struct {
	Status  bootstrap.Status  `json:"status"`
	Message string            `json:"message"`
	Result  *bootstrap.Result `json:"result"`
}

// InitDB godoc
// @Summary Create the schema and seed reference data
// @Description Idempotent; safe to call repeatedly.
// @Tags system
// @Produce json
// @Success 200 {object} bootstrap.Result
// @Failure 500 {object} BootstrapFailure
// @Router /init-db [get]
func (h *BootstrapHandler) InitDB(c echo.Context) error {
	result := h.runner.Run(c.Request().Context())
	if result.Status == bootstrap.StatusFailed {
		return c.JSON(http.StatusInternalServerError, BootstrapFailure{
			Status:  result.Status,
			Message: result.Reason,
			Result:  result,
		})
	}
	return c.JSON(http.StatusOK, result)
}
