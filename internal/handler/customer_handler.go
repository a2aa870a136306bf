package handler

import (
	"go-rental-console/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CustomerHandler struct {
	customerService service.CustomerService
}

func NewCustomerHandler(customerService service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// GetCustomers lists every customer with their rental history attached
// GET /api/v1/customers
func (h *CustomerHandler) GetCustomers(c *fiber.Ctx) error {
	customers, err := h.customerService.GetAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch customers"})
	}
	return c.JSON(customers)
}
