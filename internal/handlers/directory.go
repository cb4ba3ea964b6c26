package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kaamwala/kaamwala_be/internal/directory"
)

type DirectoryHandler struct {
	Directory *directory.Service
}

func NewDirectoryHandler(d *directory.Service) *DirectoryHandler {
	return &DirectoryHandler{Directory: d}
}

// Services lists registered workers, optionally narrowed by ?type= and
// ?location=.
func (h *DirectoryHandler) Services(c *fiber.Ctx) error {
	providers, err := h.Directory.List(c.UserContext(), directory.Filter{
		Type:     c.Query("type"),
		Location: c.Query("location"),
	})
	if err != nil {
		return respondError(c, err)
	}

	return ok(c, "", fiber.Map{
		"providers": providers,
		"total":     len(providers),
	}, "")
}

func (h *DirectoryHandler) Catalog(c *fiber.Ctx) error {
	return ok(c, "", directory.GetCatalog(), "")
}
