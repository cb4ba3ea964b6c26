package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kaamwala/kaamwala_be/internal/auth"
	"github.com/kaamwala/kaamwala_be/internal/middleware"
	"github.com/kaamwala/kaamwala_be/internal/validation"
)

type AuthHandler struct {
	Flow *auth.Flow
}

func NewAuthHandler(flow *auth.Flow) *AuthHandler {
	return &AuthHandler{Flow: flow}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req auth.LoginInput
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	res, err := h.Flow.Login(c.UserContext(), middleware.ClientID(c), req)
	if err != nil {
		return respondError(c, err)
	}

	return ok(c, "Login successful", fiber.Map{"session": res.Session}, res.Redirect)
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req auth.SignupInput
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	res, err := h.Flow.Signup(c.UserContext(), middleware.ClientID(c), req)
	if err != nil {
		return respondError(c, err)
	}

	// worker signups are sent to the registration wizard
	if res.Session == nil {
		return ok(c, "Continue your registration as a worker", nil, res.Redirect)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"message":  "Account created",
		"data":     fiber.Map{"session": res.Session},
		"redirect": res.Redirect,
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	res, err := h.Flow.Logout(c.UserContext(), middleware.ClientID(c))
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, "Logged out", nil, res.Redirect)
}

// Session returns the current session, or null data when logged out.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	s := middleware.CurrentSession(c)
	if s == nil {
		return ok(c, "Not logged in", nil, "")
	}
	return ok(c, "Logged in", fiber.Map{
		"session":     s,
		"displayName": s.DisplayName(),
	}, "")
}

func (h *AuthHandler) PasswordStrength(c *fiber.Ctx) error {
	return ok(c, "", fiber.Map{
		"strength": validation.ClassifyPasswordStrength(c.Query("password")),
	}, "")
}
