package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/kaamwala/kaamwala_be/internal/logger"
	"github.com/kaamwala/kaamwala_be/internal/utils"
)

const ContextCookie = "kw_ctx"

// ClientContext identifies the browser behind a request. A missing or
// invalid kw_ctx cookie gets a freshly minted client id.
func ClientContext(secret string, expiresMin int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tokenStr := c.Cookies(ContextCookie); tokenStr != "" {
			if claims, err := utils.ParseJWT(secret, tokenStr); err == nil {
				c.Locals(LocalClientID, claims.ClientID)
				return c.Next()
			}
		}

		clientID := uuid.NewString()
		token, err := utils.SignJWT(secret, clientID, expiresMin)
		if err != nil {
			logger.Error("sign client context", "err", err)
			return fiber.ErrInternalServerError
		}

		c.Cookie(&fiber.Cookie{
			Name:     ContextCookie,
			Value:    token,
			Path:     "/",
			HTTPOnly: true,
			Secure:   false,
			SameSite: "Lax",
			MaxAge:   expiresMin * 60,
		})
		c.Locals(LocalClientID, clientID)
		return c.Next()
	}
}
