package middleware

import (
	"github.com/benbeisheim/clickchess-backend/internal/obslog"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const PlayerIDKey = "playerID"

func EnsurePlayerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id, ok := c.Locals(PlayerIDKey).(string); ok && id != "" {
			return c.Next()
		}

		// Header first, then query; browsers cannot set headers on a
		// websocket handshake.
		playerID := c.Get("X-Player-ID")
		if playerID == "" {
			playerID = c.Query("playerId")
		}

		if playerID == "" {
			obslog.L().Debug("player_id_missing", zap.String("path", c.Path()))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Player ID is required. Please ensure client is properly initialized.",
			})
		}

		c.Locals(PlayerIDKey, playerID)
		return c.Next()
	}
}

// PlayerID returns the id stored by EnsurePlayerID.
func PlayerID(c *fiber.Ctx) string {
	id, _ := c.Locals(PlayerIDKey).(string)
	return id
}
