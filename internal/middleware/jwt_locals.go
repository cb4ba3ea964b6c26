package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kaamwala/kaamwala_be/internal/logger"
	"github.com/kaamwala/kaamwala_be/internal/models"
	"github.com/kaamwala/kaamwala_be/internal/session"
)

const (
	LocalClientID = "clientId"
	LocalSession  = "session"
)

// AttachSession loads the session of the client context, if any. Must run
// after ClientContext.
func AttachSession(m *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		clientID := ClientID(c)
		if clientID == "" {
			return fiber.ErrUnauthorized
		}

		s, err := m.Current(c.UserContext(), clientID)
		if err != nil {
			logger.Error("load session", "client", clientID, "err", err)
			return fiber.ErrInternalServerError
		}
		if s != nil {
			c.Locals(LocalSession, s)
		}
		return c.Next()
	}
}

func ClientID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalClientID).(string)
	return id
}

// CurrentSession is nil when the client context is logged out.
func CurrentSession(c *fiber.Ctx) *models.Session {
	s, _ := c.Locals(LocalSession).(*models.Session)
	if s == nil || !s.LoggedIn {
		return nil
	}
	return s
}
