package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hr-console/internal/api/dto"
	"github.com/spec-kit/hr-console/internal/domain"
	"github.com/spec-kit/hr-console/internal/events"
)

// SessionManager is the session surface the handlers need.
type SessionManager interface {
	Read(c *fiber.Ctx) (domain.Session, bool)
	Create(c *fiber.Ctx, s domain.Session) (domain.Session, error)
	Update(c *fiber.Ctx, fn func(domain.Session) domain.Session) (domain.Session, error)
	Destroy(c *fiber.Ctx, reason events.DestroyReason) error
}

// wantsJSON reports whether the caller is the browser bundle rather than a form post.
func wantsJSON(c *fiber.Ctx) bool {
	return c.Is("json") || c.Accepts(fiber.MIMETextHTML, fiber.MIMEApplicationJSON) == fiber.MIMEApplicationJSON
}

// navigate sends browsers a 303 to the next route and JSON clients a redirect envelope.
func navigate(c *fiber.Ctx, to string, user *dto.UserResponse) error {
	if !wantsJSON(c) {
		return c.Redirect(to, fiber.StatusSeeOther)
	}
	return c.JSON(fiber.Map{"data": dto.RedirectResponse{Redirect: to, User: user}})
}
