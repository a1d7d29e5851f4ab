package middleware

import (
	"log"
	"strings"

	"sklep/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired is a Fiber middleware that rejects requests without a valid
// Bearer token and stores the caller's identity in the request locals.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		storeClaims(c, claims)
		return c.Next()
	}
}

// OptionalAuth stores the caller's identity when a valid token is present
// and lets the request through either way. Checkout uses it: guests place
// orders without an account, logged-in buyers get the order linked to
// theirs.
func OptionalAuth(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			if claims, err := authService.ValidateToken(parts[1]); err == nil {
				storeClaims(c, claims)
			}
		}
		return c.Next()
	}
}

func storeClaims(c *fiber.Ctx, claims map[string]interface{}) {
	// JSON numbers decode as float64.
	if id, ok := claims["user_id"].(float64); ok {
		c.Locals("user_id", uint(id))
	}
	if email, ok := claims["email"].(string); ok {
		c.Locals("email", email)
	}
	if level, ok := claims["permission_level"].(float64); ok {
		c.Locals("permission_level", int(level))
	}
}

// UserID returns the authenticated caller's user id, or nil for guests.
func UserID(c *fiber.Ctx) *uint {
	if id, ok := c.Locals("user_id").(uint); ok {
		return &id
	}
	return nil
}
