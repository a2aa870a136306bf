package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Helpers to pull operator info from the JWT context (set by auth middleware)

func getOperatorID(c *fiber.Ctx) string {
	operatorID := c.Locals("operator_id")
	if operatorID == nil {
		return "system" // Shouldn't happen on protected routes
	}
	return operatorID.(string)
}

func getOperatorName(c *fiber.Ctx) string {
	name := c.Locals("operator_name")
	if name == nil {
		return "Unknown"
	}
	return name.(string)
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}
