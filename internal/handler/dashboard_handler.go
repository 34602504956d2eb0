package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"sitereport/internal/service"
)

// DashboardHandler handles dashboard and listing endpoints.
type DashboardHandler struct {
	dashboardService service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Dashboard godoc
// @Summary Dashboard counters and recent reports
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.Dashboard
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/dashboard [get]
func (h *DashboardHandler) Dashboard(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	dashboard, err := h.dashboardService.Dashboard(c.Request().Context(), user)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, dashboard)
}

// Projects godoc
// @Summary List active projects
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.ProjectView
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/projects [get]
func (h *DashboardHandler) Projects(c echo.Context) error {
	projects, err := h.dashboardService.Projects(c.Request().Context())
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, projects)
}

// Reports godoc
// @Summary List reports
// @Description Master users see every report, others their own.
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.ReportView
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/reports [get]
func (h *DashboardHandler) Reports(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	reports, err := h.dashboardService.Reports(c.Request().Context(), user)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, reports)
}

// Visits godoc
// @Summary List visits
// @Description Master users see every visit, others the ones they are responsible for.
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.VisitView
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/visits [get]
func (h *DashboardHandler) Visits(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	visits, err := h.dashboardService.Visits(c.Request().Context(), user)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, visits)
}
