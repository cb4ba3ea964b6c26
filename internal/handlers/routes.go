package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/kaamwala/kaamwala_be/internal/auth"
	"github.com/kaamwala/kaamwala_be/internal/directory"
	"github.com/kaamwala/kaamwala_be/internal/middleware"
	"github.com/kaamwala/kaamwala_be/internal/models"
	"github.com/kaamwala/kaamwala_be/internal/nav"
	"github.com/kaamwala/kaamwala_be/internal/realtime"
	"github.com/kaamwala/kaamwala_be/internal/session"
	"github.com/kaamwala/kaamwala_be/internal/wizard"
)

type Deps struct {
	JWTSecret       string
	ContextMinutes  int
	FrontendBaseURL string

	Flow      *auth.Flow
	Sessions  *session.Manager
	Hub       *realtime.Hub
	Drafts    *wizard.Registry
	Directory *directory.Service
}

func Register(app *fiber.App, d Deps) {
	app.Use(middleware.ClientContext(d.JWTSecret, d.ContextMinutes))

	wsH := NewSessionSocketHandler(d.Hub)
	app.Get("/ws/session", wsH.Upgrade, websocket.New(wsH.Serve))

	api := app.Group("/api", middleware.AttachSession(d.Sessions))

	authH := NewAuthHandler(d.Flow)
	api.Get("/session", authH.Session)
	api.Post("/auth/login", authH.Login)
	api.Post("/auth/signup", authH.Signup)
	api.Post("/auth/logout", authH.Logout)
	api.Get("/password-strength", authH.PasswordStrength)

	dirH := NewDirectoryHandler(d.Directory)
	api.Get("/services", dirH.Services)
	api.Get("/catalog", dirH.Catalog)

	NewBecomeWorkerHandler(d.Drafts).Routes(api)

	api.Get("/worker-profile",
		middleware.RequireRoles(string(models.RoleWorker)),
		WorkerProfile,
	)

	api.All("/*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not found")
	})

	// unknown pages land on /home
	base := strings.TrimRight(d.FrontendBaseURL, "/")
	app.Get("/*", func(c *fiber.Ctx) error {
		return c.Redirect(base+nav.Resolve(c.OriginalURL()), fiber.StatusFound)
	})
}
