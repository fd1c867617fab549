package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hr-console/internal/access"
	"github.com/spec-kit/hr-console/internal/api/dto"
)

const notFoundPage = "not_found"

// PageHandler renders page descriptors for the browser bundle.
type PageHandler struct {
	sessions SessionManager
}

// NewPageHandler constructs handler.
func NewPageHandler(sessions SessionManager) *PageHandler {
	return &PageHandler{sessions: sessions}
}

// Render returns a handler that mounts page.
func (h *PageHandler) Render(page string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(h.describe(c, page))
	}
}

// MyDashboard handles GET /me/dashboard by sending the user to their role's landing route.
func (h *PageHandler) MyDashboard(c *fiber.Ctx) error {
	s, _ := h.sessions.Read(c)
	return c.Redirect(access.LandingRoute(s.Role), fiber.StatusSeeOther)
}

// NotFound renders the not-found view for every unmatched route.
func (h *PageHandler) NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(h.describe(c, notFoundPage))
}

func (h *PageHandler) describe(c *fiber.Ctx, page string) dto.PageDescriptor {
	descriptor := dto.PageDescriptor{Page: page, Path: c.Path()}
	if params := c.AllParams(); len(params) > 0 {
		descriptor.Params = params
	}
	if s, ok := h.sessions.Read(c); ok {
		descriptor.User = dto.NewUserResponse(s)
	}
	return descriptor
}
