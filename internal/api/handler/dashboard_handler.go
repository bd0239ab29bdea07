package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hotelchain/booking-portal/internal/core/ports"
)

type DashboardHandler struct {
	dashboard ports.DashboardService
}

func NewDashboardHandler(dashboard ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Summary returns the operational overview. Behind the view-dashboard guard.
//
// @Summary      Dashboard overview
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  domain.DashboardSummary
// @Failure      403  {object}  map[string]string
// @Router       /dashboard [get]
func (h *DashboardHandler) Summary(c echo.Context) error {
	summary, err := h.dashboard.Summary(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

// Statistics returns reporting data. Behind the view-statistics guard.
func (h *DashboardHandler) Statistics(c echo.Context) error {
	stats, err := h.dashboard.Statistics(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
