package handler

import (
	"go-rental-console/internal/model"
	"go-rental-console/internal/repository"
	"go-rental-console/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

type ConsoleHandler struct {
	consoleRepo repository.ConsoleRepository
}

func NewConsoleHandler(consoleRepo repository.ConsoleRepository) *ConsoleHandler {
	return &ConsoleHandler{consoleRepo: consoleRepo}
}

// GetConsoles lists the equipment fleet
// GET /api/v1/consoles
func (h *ConsoleHandler) GetConsoles(c *fiber.Ctx) error {
	consoles, err := h.consoleRepo.FindAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch consoles"})
	}
	return c.JSON(consoles)
}

// CreateConsole adds a unit to the fleet
// POST /api/v1/consoles
func (h *ConsoleHandler) CreateConsole(c *fiber.Ctx) error {
	var console model.Console
	if err := c.BodyParser(&console); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if errs := validator.ValidateStruct(&console); len(errs) > 0 {
		first := errs[0]
		return c.Status(400).JSON(fiber.Map{
			"error": "Validation failed: field '" + first.FailedField + "' failed on tag '" + first.Tag + "'",
		})
	}

	if console.Status == "" {
		console.Status = model.ConsoleAvailable
	}
	console.CreatedBy = getOperatorID(c)
	console.UpdatedBy = getOperatorID(c)

	if err := h.consoleRepo.Create(&console); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create console"})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Console created", "data": console})
}

// UpdateConsole edits a unit (name, price, maintenance status)
// PUT /api/v1/consoles/:id
func (h *ConsoleHandler) UpdateConsole(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid console ID"})
	}

	existing, err := h.consoleRepo.FindByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Console not found"})
	}

	var req model.Console
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if req.Name != "" {
		existing.Name = req.Name
	}
	if req.Model != "" {
		existing.Model = req.Model
	}
	if req.Status != "" {
		existing.Status = req.Status
	}
	if req.HourlyPrice > 0 {
		existing.HourlyPrice = req.HourlyPrice
	}
	if req.ImageURL != "" {
		existing.ImageURL = req.ImageURL
	}
	existing.UpdatedBy = getOperatorID(c)

	if err := h.consoleRepo.Update(existing); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update console"})
	}

	return c.JSON(fiber.Map{"message": "Console updated", "data": existing})
}
