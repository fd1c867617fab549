package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/hr-console/internal/access"
	"github.com/spec-kit/hr-console/internal/api/dto"
	"github.com/spec-kit/hr-console/internal/domain"
	"github.com/spec-kit/hr-console/internal/events"
	"github.com/spec-kit/hr-console/internal/service"
)

// AuthHandler exposes login, logout and password change.
type AuthHandler struct {
	authService *service.AuthService
	sessions    SessionManager
	logger      *zap.Logger
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, sessions SessionManager, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions, logger: logger}
}

// Login handles POST /auth/login. A successful login replaces any session of the device and
// lands on the role's dashboard.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	s, err := h.authService.Login(c.UserContext(), req.Email, req.Password, bool(req.IsAdmin))
	if err != nil {
		return err
	}

	s, err = h.sessions.Create(c, s)
	if err != nil {
		return err
	}

	landing := access.LandingRoute(s.Role)
	if !s.Role.Valid() {
		h.logger.Warn("login with unrecognized role", zap.String("email", s.Email), zap.String("role", s.Role.String()))
	}
	return navigate(c, landing, dto.NewUserResponse(s))
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.sessions.Destroy(c, events.ReasonLogout); err != nil {
		h.logger.Warn("failed to remove session record", zap.Error(err))
	}
	return navigate(c, domain.PathLogin, nil)
}

// ChangePassword handles POST /auth/change-password. The session ends on success so the user
// signs in again with the new password.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.authService.ChangePassword(c.UserContext(), req.OldPassword, req.NewPassword); err != nil {
		return err
	}

	if err := h.sessions.Destroy(c, events.ReasonPasswordChanged); err != nil {
		h.logger.Warn("failed to remove session record", zap.Error(err))
	}
	return navigate(c, domain.PathLogin, nil)
}
