package middleware

import (
	"sklep/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AdminRequired gates the admin surface. It runs after AuthRequired and
// rejects every caller whose permission level is not above an ordinary
// shopper's with a plain forbidden response, before the handler body runs.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		level, ok := c.Locals("permission_level").(int)
		if !ok || level <= models.PermissionShopper {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Admin access required",
			})
		}
		return c.Next()
	}
}
