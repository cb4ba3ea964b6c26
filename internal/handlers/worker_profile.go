package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kaamwala/kaamwala_be/internal/middleware"
)

// WorkerProfile shows the logged-in worker their own profile. Routed behind
// RequireRoles("worker").
func WorkerProfile(c *fiber.Ctx) error {
	s := middleware.CurrentSession(c)
	if s == nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Please login as a worker to view this page.")
	}

	return ok(c, "", fiber.Map{
		"fullName":    s.FullName,
		"email":       s.Email,
		"phone":       s.Phone,
		"cnic":        s.CNIC,
		"serviceType": s.ServiceType,
		"experience":  s.Experience,
		"location":    s.Location,
		"description": s.Description,
		"profilePic":  s.ProfilePicRef,
	}, "")
}
