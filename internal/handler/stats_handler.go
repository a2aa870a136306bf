package handler

import (
	"go-rental-console/internal/service"

	"github.com/gofiber/fiber/v2"
)

type StatsHandler struct {
	statsService service.StatsService
}

func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetDashboardStats returns the live business snapshot shown on the dashboard
// GET /api/v1/dashboard/stats
func (h *StatsHandler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.statsService.GetDashboardStats()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch stats"})
	}
	return c.JSON(stats)
}
