package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nexaboard/nexaboard/internal/core/ports"
)

// InsightHandler serves the analytics report and the leaderboard.
type InsightHandler struct {
	service ports.InsightService
}

func NewInsightHandler(service ports.InsightService) *InsightHandler {
	return &InsightHandler{service: service}
}

// Insights handles GET /api/insights.
//
// @Summary      Productivity report
// @Tags         insights
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  ports.Insights
// @Router       /api/insights [get]
func (h *InsightHandler) Insights(c echo.Context) error {
	insights, err := h.service.GetInsights(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, insights)
}

// Leaderboard handles GET /api/insights/leaderboard.
//
// @Summary      Completion leaderboard
// @Tags         insights
// @Produce      json
// @Security     CookieAuth
// @Success      200  {array}  ports.LeaderboardEntry
// @Router       /api/insights/leaderboard [get]
func (h *InsightHandler) Leaderboard(c echo.Context) error {
	entries, err := h.service.GetLeaderboard(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}
