package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/hr-console/internal/access"
	"github.com/spec-kit/hr-console/internal/api/dto"
	"github.com/spec-kit/hr-console/internal/domain"
	"github.com/spec-kit/hr-console/internal/service"
	apperrors "github.com/spec-kit/hr-console/pkg/util"
)

// ConsoleHandler accepts the forms that unlock the gated console.
type ConsoleHandler struct {
	consoleService *service.ConsoleService
	sessions       SessionManager
	logger         *zap.Logger
}

// NewConsoleHandler constructs handler.
func NewConsoleHandler(consoleService *service.ConsoleService, sessions SessionManager, logger *zap.Logger) *ConsoleHandler {
	return &ConsoleHandler{consoleService: consoleService, sessions: sessions, logger: logger}
}

// CompleteSetup handles POST /setup.
func (h *ConsoleHandler) CompleteSetup(c *fiber.Ctx) error {
	current, ok := h.sessions.Read(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if current.Role != domain.RoleAdministrator {
		return apperrors.NewForbidden("only administrators complete the initial setup")
	}

	var req domain.SetupModel
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := h.consoleService.CompleteSetup(c.UserContext(), req); err != nil {
		return err
	}

	updated, err := h.sessions.Update(c, func(s domain.Session) domain.Session {
		s.InitialSetupComplete = true
		return s
	})
	if err != nil {
		return err
	}
	h.logger.Info("initial setup completed", zap.String("email", updated.Email))
	return navigate(c, access.LandingRoute(updated.Role), dto.NewUserResponse(updated))
}

// CompleteOnboarding handles POST /employee/onboard.
func (h *ConsoleHandler) CompleteOnboarding(c *fiber.Ctx) error {
	current, ok := h.sessions.Read(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if current.Role != domain.RoleEmployee {
		return apperrors.NewForbidden("only employees complete onboarding")
	}

	var req domain.OnboardingSubmission
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := h.consoleService.CompleteOnboarding(c.UserContext(), req); err != nil {
		return err
	}

	updated, err := h.sessions.Update(c, func(s domain.Session) domain.Session {
		s.OnboardingComplete = true
		return s
	})
	if err != nil {
		return err
	}
	h.logger.Info("employee onboarding completed", zap.String("email", updated.Email))
	return navigate(c, access.LandingRoute(updated.Role), dto.NewUserResponse(updated))
}
