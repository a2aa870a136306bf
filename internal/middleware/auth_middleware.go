package middleware

import (
	"strings"

	"go-rental-console/internal/authz"
	"go-rental-console/internal/model"
	"go-rental-console/internal/repository"
	"go-rental-console/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth is middleware that validates the JWT token and sets operator
// info in the request context
func RequireAuth(operatorRepo repository.OperatorRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		// Strict session check against the DB
		operator, err := operatorRepo.FindByID(claims.OperatorID)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Operator not found"})
		}

		if operator.TokenVersion != claims.TokenVersion {
			return c.Status(401).JSON(fiber.Map{"error": "Session expired (logged in on another device)"})
		}

		c.Locals("operator_id", claims.OperatorID.String())
		c.Locals("operator_username", claims.Username)
		c.Locals("operator_name", claims.Name)
		c.Locals("operator_capabilities", claims.Capabilities)

		return c.Next()
	}
}

// RequireCategoryAccess gates a request-queue route behind the section that
// owns the :category path parameter (rental queues behind the rentals
// section, KYC queues behind the staff section)
func RequireCategoryAccess() fiber.Handler {
	return func(c *fiber.Ctx) error {
		category := model.Category(c.Params("category"))
		return RequireCapability(authz.SectionCategory(category))(c)
	}
}

// RequireCapability gates a route behind a console section. All capability
// semantics (wildcard, implicit dashboard) live in the authz package; this
// middleware only extracts the claims and reports the denial.
func RequireCapability(capability string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		codes, ok := c.Locals("operator_capabilities").([]string)
		if !ok {
			return c.Status(403).JSON(fiber.Map{"error": "No capabilities found"})
		}

		if authz.DecideCodes(codes, capability) == authz.DecisionDenied {
			name, _ := c.Locals("operator_name").(string)
			return c.Status(403).JSON(fiber.Map{
				"error":    "Access restricted: your account (" + name + ") lacks the '" + capability + "' section",
				"section":  capability,
				"operator": name,
			})
		}

		return c.Next()
	}
}
