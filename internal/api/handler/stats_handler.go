package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nexaboard/nexaboard/internal/core/ports"
)

// StatsHandler serves the public landing-page counters.
type StatsHandler struct {
	service ports.StatsService
}

func NewStatsHandler(service ports.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// Get handles GET /api/stats.
//
// @Summary      Dashboard counters
// @Tags         stats
// @Produce      json
// @Success      200  {object}  ports.Stats
// @Router       /api/stats [get]
func (h *StatsHandler) Get(c echo.Context) error {
	stats, err := h.service.GetStats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
