package handlers

import (
	"electra/internal/services"

	"github.com/gofiber/fiber/v2"
)

type AnalyticsHandler struct {
	Analytics *services.AnalyticsService
}

// GET /api/analytics/summary
func (h *AnalyticsHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.Analytics.Summary()
	if err != nil {
		return serviceError(c, "analytics.summary", err, "Analytics not available")
	}
	return c.JSON(summary)
}

// GET /api/analytics/sales-by-category
func (h *AnalyticsHandler) SalesByCategory(c *fiber.Ctx) error {
	rows, err := h.Analytics.SalesByCategory()
	if err != nil {
		return serviceError(c, "analytics.by_category", err, "Analytics not available")
	}
	return c.JSON(rows)
}
