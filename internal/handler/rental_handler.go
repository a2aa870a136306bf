package handler

import (
	"errors"

	"go-rental-console/internal/service"

	"github.com/gofiber/fiber/v2"
)

type RentalHandler struct {
	rentalService service.RentalService
}

func NewRentalHandler(rentalService service.RentalService) *RentalHandler {
	return &RentalHandler{rentalService: rentalService}
}

// StartManual starts a walk-in rental without a backing request
// POST /api/v1/rentals/manual
func (h *RentalHandler) StartManual(c *fiber.Ctx) error {
	var req struct {
		ConsoleID string `json:"console_id"`
		Hours     int    `json:"hours"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	consoleID, err := parseUUID(req.ConsoleID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid console ID"})
	}
	if req.Hours <= 0 {
		req.Hours = 1
	}

	rental, err := h.rentalService.StartManual(consoleID, req.Hours)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrConsoleNotFound):
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrConsoleUnavailable):
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(500).JSON(fiber.Map{"error": "Failed to start rental"})
		}
	}

	return c.Status(201).JSON(fiber.Map{"message": "Rental started", "data": rental})
}

// Terminate closes the active rental on a console and reports its cost
// POST /api/v1/rentals/terminate
func (h *RentalHandler) Terminate(c *fiber.Ctx) error {
	var req struct {
		ConsoleID string `json:"console_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	consoleID, err := parseUUID(req.ConsoleID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid console ID"})
	}

	summary, err := h.rentalService.Terminate(consoleID)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveRental) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to terminate rental"})
	}

	return c.JSON(summary)
}

// History lists all rentals, newest first
// GET /api/v1/history
func (h *RentalHandler) History(c *fiber.Ctx) error {
	history, err := h.rentalService.History()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch history"})
	}
	return c.JSON(history)
}
