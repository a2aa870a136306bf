package handler

import (
	"go-rental-console/internal/model"
	"go-rental-console/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type SettingsHandler struct {
	settingsRepo repository.SettingsRepository
}

func NewSettingsHandler(settingsRepo repository.SettingsRepository) *SettingsHandler {
	return &SettingsHandler{settingsRepo: settingsRepo}
}

// GetSettings returns the single business-settings row, creating it on
// first read
// GET /api/v1/settings
func (h *SettingsHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.settingsRepo.Get()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch settings"})
	}
	return c.JSON(settings)
}

// UpdateSettings replaces the business-settings row
// PUT /api/v1/settings
func (h *SettingsHandler) UpdateSettings(c *fiber.Ctx) error {
	var settings model.Settings
	if err := c.BodyParser(&settings); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.settingsRepo.Update(&settings); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update settings"})
	}

	return c.JSON(fiber.Map{"message": "Settings updated", "data": settings})
}
