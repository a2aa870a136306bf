package handler

import (
	"errors"

	"go-rental-console/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CalendarHandler struct {
	overrideService service.OverrideService
}

func NewCalendarHandler(overrideService service.OverrideService) *CalendarHandler {
	return &CalendarHandler{overrideService: overrideService}
}

// GetOverrides lists every per-date scheduling rule
// GET /api/v1/calendar/overrides
func (h *CalendarHandler) GetOverrides(c *fiber.Ctx) error {
	overrides, err := h.overrideService.List()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch overrides"})
	}
	return c.JSON(overrides)
}

// SaveOverride upserts or (via the delete flag) removes the rule for a date
// POST /api/v1/calendar/overrides
func (h *CalendarHandler) SaveOverride(c *fiber.Ctx) error {
	var input service.OverrideInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.overrideService.Save(input); err != nil {
		switch {
		case errors.Is(err, service.ErrOverrideDateInvalid),
			errors.Is(err, service.ErrOverrideTypeInvalid),
			errors.Is(err, service.ErrDiscountValueRequired),
			errors.Is(err, service.ErrDiscountValueRange):
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(500).JSON(fiber.Map{"error": "Failed to save override"})
		}
	}

	return c.JSON(fiber.Map{"success": true})
}

// CheckDate resolves the rule for one date (today when omitted)
// GET /api/v1/calendar/check?date=YYYY-MM-DD
func (h *CalendarHandler) CheckDate(c *fiber.Ctx) error {
	override, err := h.overrideService.CheckDate(c.Query("date"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to check date"})
	}
	if override == nil {
		return c.JSON(fiber.Map{"type": "none"})
	}
	return c.JSON(override)
}
