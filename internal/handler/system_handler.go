package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const pingTimeout = 2 * time.Second

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemHandler serves probes and the service index.
type SystemHandler struct {
	db      Pinger
	version string
	log     *zap.Logger
	now     func() time.Time
}

// NewSystemHandler creates a new system handler.
func NewSystemHandler(db Pinger, version string, log *zap.Logger) *SystemHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &SystemHandler{db: db, version: version, log: log, now: time.Now}
}

// Health godoc
// @Summary Liveness probe
// @Description Always 200, even when the database is down, so the container is not restarted for a transient outage.
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *SystemHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "healthy",
		"container": "active",
	})
}

// Status godoc
// @Summary API status
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/status [get]
func (h *SystemHandler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":      "online",
		"server_time": h.now().UTC().Format(time.RFC3339),
	})
}

// APIStatus godoc
// @Summary API status with database connectivity
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api-status [get]
func (h *SystemHandler) APIStatus(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), pingTimeout)
	defer cancel()

	database := "connected"
	if err := h.db.Ping(ctx); err != nil {
		h.log.Warn("database ping failed", zap.Error(err))
		database = "disconnected"
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status":      "online",
		"server_time": h.now().UTC().Format(time.RFC3339),
		"database":    database,
	})
}

// Index godoc
// @Summary List the available endpoints
// @Tags system
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *SystemHandler) Index(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"name":    "Site Report API",
		"version": h.version,
		"status":  "online",
		"endpoints": map[string]string{
			"health":     "/health",
			"init_db":    "/init-db",
			"api_status": "/api-status",
			"login":      "/api/login",
			"sync_down":  "/api/sync/down",
			"dashboard":  "/api/dashboard",
			"projects":   "/api/projects",
			"reports":    "/api/reports",
			"visits":     "/api/visits",
		},
	})
}
