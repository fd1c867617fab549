package access

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/hr-console/internal/domain"
	"github.com/spec-kit/hr-console/internal/observability"
)

// SessionReader exposes the per-request session snapshot.
type SessionReader interface {
	Read(c *fiber.Ctx) (domain.Session, bool)
}

// Guard applies Evaluate to fiber requests.
type Guard struct {
	sessions SessionReader
	metrics  *observability.Metrics
	logger   *zap.Logger
}

// NewGuard constructs the guard. metrics may be nil.
func NewGuard(sessions SessionReader, metrics *observability.Metrics, logger *zap.Logger) *Guard {
	return &Guard{sessions: sessions, metrics: metrics, logger: logger}
}

// Require enforces level on every request it handles. Redirects are unconditional.
func (g *Guard) Require(level Level) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, ok := g.sessions.Read(c)
		decision := Evaluate(level, s, ok, c.Path())
		g.metrics.RecordGuardDecision(level.String(), string(decision.Reason))

		if decision.Allowed {
			return c.Next()
		}

		g.logger.Debug("navigation redirected",
			zap.String("path", c.Path()),
			zap.String("to", decision.Redirect),
			zap.String("reason", string(decision.Reason)),
			zap.String("role", s.Role.String()))
		return c.Redirect(decision.Redirect, fiber.StatusSeeOther)
	}
}
