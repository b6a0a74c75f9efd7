package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// GameExists reports whether a session with the given id is registered.
type GameExists func(gameID string) bool

// WebSocketUpgrade lets a request through to the WebSocket handler only when
// it is an upgrade for a known game from an identified client. Refusing
// here keeps bad requests on plain HTTP status codes.
func WebSocketUpgrade(exists GameExists) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		if _, ok := c.Locals(ClientIDKey).(string); !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "client ID is required",
			})
		}

		gameID := c.Params("gameId")
		if gameID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "game ID is required",
			})
		}
		if !exists(gameID) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "game not found",
			})
		}
		return c.Next()
	}
}
