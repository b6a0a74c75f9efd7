package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// ClientIDKey is the c.Locals key holding the caller's id.
const ClientIDKey = "clientID"

// EnsureClientID reads the caller's id from the X-Client-ID header or the
// clientId query parameter and stores it under ClientIDKey.
func EnsureClientID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals(ClientIDKey) != nil {
			return c.Next()
		}

		// query fallback for WebSocket handshakes
		clientID := c.Get("X-Client-ID")
		if clientID == "" {
			clientID = c.Query("clientId")
		}
		if clientID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Client ID is required. Please ensure client is properly initialized.",
			})
		}

		c.Locals(ClientIDKey, clientID)
		return c.Next()
	}
}
