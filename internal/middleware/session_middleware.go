package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const visitorCookie = "visitor_id"

// VisitorSession guarantees every request carries an opaque visitor id and
// exposes it via locals. The id scopes the visitor's cart; it says nothing
// about who the visitor is.
func VisitorSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		visitorID := c.Cookies(visitorCookie)
		if visitorID == "" {
			visitorID = uuid.New().String()
			c.Cookie(&fiber.Cookie{
				Name:     visitorCookie,
				Value:    visitorID,
				Expires:  time.Now().Add(24 * time.Hour),
				HTTPOnly: true,
			})
		}
		c.Locals(visitorCookie, visitorID)
		return c.Next()
	}
}

// VisitorID returns the request's visitor id.
func VisitorID(c *fiber.Ctx) string {
	id, _ := c.Locals(visitorCookie).(string)
	return id
}
