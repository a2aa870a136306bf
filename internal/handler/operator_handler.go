package handler

import (
	"errors"

	"go-rental-console/internal/service"

	"github.com/gofiber/fiber/v2"
)

type OperatorHandler struct {
	operatorService service.OperatorService
}

func NewOperatorHandler(operatorService service.OperatorService) *OperatorHandler {
	return &OperatorHandler{operatorService: operatorService}
}

// GetOperators lists all staff accounts
// GET /api/v1/operators
func (h *OperatorHandler) GetOperators(c *fiber.Ctx) error {
	operators, err := h.operatorService.GetAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch operators"})
	}
	return c.JSON(operators)
}

// GetCurrent returns the authenticated operator's own record
// GET /api/v1/operators/current
func (h *OperatorHandler) GetCurrent(c *fiber.Ctx) error {
	id, err := parseUUID(getOperatorID(c))
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	operator, err := h.operatorService.GetByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Operator not found"})
	}
	return c.JSON(operator)
}

// CreateOperator adds a staff account
// POST /api/v1/operators
func (h *OperatorHandler) CreateOperator(c *fiber.Ctx) error {
	var req service.CreateOperatorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	operator, err := h.operatorService.Create(&req, getOperatorID(c))
	if err != nil {
		if errors.Is(err, service.ErrUsernameExists) {
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Operator created", "data": operator})
}

// UpdateOperator edits a staff account (name, role, capabilities, password)
// PUT /api/v1/operators/:id
func (h *OperatorHandler) UpdateOperator(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid operator ID"})
	}

	var req service.UpdateOperatorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	operator, err := h.operatorService.Update(id, &req, getOperatorID(c))
	if err != nil {
		if errors.Is(err, service.ErrOperatorNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Operator updated", "data": operator})
}

// DeleteOperator removes a staff account; the last owner is protected
// DELETE /api/v1/operators/:id
func (h *OperatorHandler) DeleteOperator(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid operator ID"})
	}

	if err := h.operatorService.Delete(id); err != nil {
		switch {
		case errors.Is(err, service.ErrOperatorNotFound):
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrLastOwner):
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(500).JSON(fiber.Map{"error": "Failed to delete operator"})
		}
	}

	return c.JSON(fiber.Map{"message": "Operator deleted"})
}

// UpdateProfile lets an operator edit their own name, bio, and password
// PUT /api/v1/operators/profile
func (h *OperatorHandler) UpdateProfile(c *fiber.Ctx) error {
	id, err := parseUUID(getOperatorID(c))
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req service.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	operator, err := h.operatorService.UpdateProfile(id, &req)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Profile updated", "data": operator})
}

// UpdateCapabilities replaces an operator's capability set
// PUT /api/v1/operators/:id/capabilities
func (h *OperatorHandler) UpdateCapabilities(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid operator ID"})
	}

	var req struct {
		Capabilities []string `json:"capabilities"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.operatorService.UpdateCapabilities(id, req.Capabilities); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Capabilities updated"})
}

// DailyReport summarizes today's review activity per operator
// GET /api/v1/operators/reports/daily
func (h *OperatorHandler) DailyReport(c *fiber.Ctx) error {
	report, err := h.operatorService.DailyReport()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build report"})
	}
	return c.JSON(report)
}
