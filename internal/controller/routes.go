package controller

import (
	"github.com/benbeisheim/clickchess-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type RouteConfig struct {
	ReadBufferSize  int
	WriteBufferSize int
	Origins         []string
}

// RegisterRoutes mounts the REST API under /api and the session socket
// under /ws.
func RegisterRoutes(app *fiber.App, sc *SessionController, wsc *WebSocketController, cfg RouteConfig) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Get("/ws/session/:sessionId", middleware.EnsurePlayerID(), middleware.WebSocketUpgrade(), websocket.New(wsc.HandleConnection, websocket.Config{
		ReadBufferSize:  cfg.ReadBufferSize,
		WriteBufferSize: cfg.WriteBufferSize,
		Origins:         cfg.Origins,
	}))

	api := app.Group("/api", middleware.EnsurePlayerID())

	sessionRoutes := api.Group("/session")
	sessionRoutes.Post("/", sc.CreateSession)
	sessionRoutes.Get("/:sessionId", sc.GetSessionState)
	sessionRoutes.Get("/:sessionId/selection", sc.GetSelection)
	sessionRoutes.Get("/:sessionId/legal", sc.CheckMove)
	sessionRoutes.Post("/:sessionId/click", sc.Click)
	sessionRoutes.Delete("/:sessionId", sc.DeleteSession)
}
