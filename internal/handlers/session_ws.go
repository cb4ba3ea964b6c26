package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/kaamwala/kaamwala_be/internal/middleware"
	"github.com/kaamwala/kaamwala_be/internal/realtime"
)

type SessionSocketHandler struct {
	Hub *realtime.Hub
}

func NewSessionSocketHandler(hub *realtime.Hub) *SessionSocketHandler {
	return &SessionSocketHandler{Hub: hub}
}

// Upgrade rejects plain HTTP requests and hands the client id to the
// websocket connection.
func (h *SessionSocketHandler) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return c.Next()
}

func (h *SessionSocketHandler) Serve(conn *websocket.Conn) {
	clientID, _ := conn.Locals(middleware.LocalClientID).(string)
	if clientID == "" {
		_ = conn.Close()
		return
	}
	realtime.ServeAuthChanges(conn, h.Hub, clientID)
}
