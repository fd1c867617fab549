package http

import (
	"context"
	"encoding/json"
	nethttp "net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/httprate"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"go.uber.org/zap"

	"github.com/spec-kit/hr-console/internal/observability"
	apperrors "github.com/spec-kit/hr-console/pkg/util"
)

// SessionLoader loads the per-request session snapshot.
type SessionLoader interface {
	Middleware() fiber.Handler
}

// RegisterMiddlewares attaches global middlewares such as error handling, logging and the
// session snapshot.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, timeout time.Duration, sessions SessionLoader) {
	if timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	app.Use(observability.RequestLogger(logger, metrics))
	app.Use(errorHandlingMiddleware(logger, metrics))
	if sessions != nil {
		app.Use(sessions.Middleware())
	}
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				domainErr := apperrors.ToDomainError(err)
				metrics.RecordError(c.Path(), c.Method(), domainErr.Code)
				if domainErr.HTTPStatus >= 500 {
					logger.Error("request failed", zap.Error(domainErr))
				}
				c.Status(domainErr.HTTPStatus)
				_ = c.JSON(apperrors.ErrorBody(domainErr))
				err = nil
			}
		}()
		return c.Next()
	}
}

// LoginRateLimiter bounds login submissions per client IP.
func LoginRateLimiter(perMinute int, metrics *observability.Metrics) fiber.Handler {
	if perMinute <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	limiter := httprate.Limit(
		perMinute,
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			limited := apperrors.ToDomainError(apperrors.NewRateLimited("too many login attempts, please try again later"))
			metrics.RecordError(r.URL.Path, r.Method, limited.Code)
			w.Header().Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			w.WriteHeader(limited.HTTPStatus)
			_ = json.NewEncoder(w).Encode(apperrors.ErrorBody(limited))
		}),
	)
	return adaptor.HTTPMiddleware(limiter)
}
