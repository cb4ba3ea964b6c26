// internal/realtime/websocket.go
package realtime

import (
	"github.com/gofiber/websocket/v2"

	"github.com/kaamwala/kaamwala_be/internal/logger"
)

type pushMessage struct {
	Type string `json:"type"`
}

// ServeAuthChanges pushes {"type":"auth-change"} to conn whenever the
// session of clientID changes, until the peer disconnects. A slow peer loses
// messages rather than blocking the hub.
func ServeAuthChanges(conn *websocket.Conn, hub *Hub, clientID string) {
	send := make(chan pushMessage, 8)
	unsubscribe := hub.Subscribe(func(ev AuthEvent) {
		if ev.ClientID != clientID {
			return
		}
		select {
		case send <- pushMessage{Type: "auth-change"}:
		default:
		}
	})
	defer unsubscribe()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case msg := <-send:
			if err := conn.WriteJSON(msg); err != nil {
				logger.Debug("websocket write failed", "client", clientID, "err", err)
				return
			}
		}
	}
}
