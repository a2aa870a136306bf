package handler

import (
	"errors"

	"go-rental-console/internal/model"
	"go-rental-console/internal/service"

	"github.com/gofiber/fiber/v2"
)

type RequestHandler struct {
	reviewService service.ReviewService
}

func NewRequestHandler(reviewService service.ReviewService) *RequestHandler {
	return &RequestHandler{reviewService: reviewService}
}

// ReviewActionRequest is the two-outcome review payload shared by rental
// and KYC requests
type ReviewActionRequest struct {
	ID     string `json:"id"`
	Action string `json:"action"` // "approve" or "reject"
	Note   string `json:"note"`
}

// ListRequests returns the request queue for one category, pending first,
// newest first
// GET /api/v1/requests/:category
func (h *RequestHandler) ListRequests(c *fiber.Ctx) error {
	category := model.Category(c.Params("category"))

	requests, err := h.reviewService.ListRequests(category)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCategory) {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch requests"})
	}

	return c.JSON(requests)
}

// ReviewRequest applies an approve/reject decision to a pending request.
// A request that is no longer pending yields 409, and nothing is mutated;
// the operator sees the failure explicitly.
// POST /api/v1/requests/:category/action
func (h *RequestHandler) ReviewRequest(c *fiber.Ctx) error {
	category := model.Category(c.Params("category"))

	var req ReviewActionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	requestID, err := parseUUID(req.ID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request ID"})
	}

	reviewerID, err := parseUUID(getOperatorID(c))
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	updated, err := h.reviewService.Review(category, requestID, model.ReviewOutcome(req.Action), reviewerID, req.Note)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReviewConflict):
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrRequestNotFound):
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidOutcome), errors.Is(err, service.ErrInvalidCategory),
			errors.Is(err, service.ErrConsoleUnavailable), errors.Is(err, service.ErrConsoleNotFound):
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(500).JSON(fiber.Map{"error": "Failed to review request"})
		}
	}

	return c.JSON(fiber.Map{"message": "Request reviewed", "data": updated})
}

// SubmitRentalRequest creates a pending rental request (customer channel)
// POST /api/v1/requests/rental/submit
func (h *RequestHandler) SubmitRentalRequest(c *fiber.Ctx) error {
	var req struct {
		CustomerID    string `json:"customer_id"`
		ConsoleID     string `json:"console_id"`
		SelectedHours int    `json:"selected_hours"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	customerID, err := parseUUID(req.CustomerID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}
	consoleID, err := parseUUID(req.ConsoleID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid console ID"})
	}

	request, err := h.reviewService.SubmitRentalRequest(customerID, consoleID, req.SelectedHours)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to submit request"})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Request submitted", "data": request})
}

// SubmitKYCRequest creates a pending identity-verification request
// POST /api/v1/requests/kyc/submit
func (h *RequestHandler) SubmitKYCRequest(c *fiber.Ctx) error {
	var req struct {
		CustomerID string `json:"customer_id"`
		PhotoURL   string `json:"photo_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if req.PhotoURL == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Photo URL is required"})
	}
	customerID, err := parseUUID(req.CustomerID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	request, err := h.reviewService.SubmitKYCRequest(customerID, req.PhotoURL)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to submit request"})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Request submitted", "data": request})
}
