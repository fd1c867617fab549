package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hr-console/internal/hrapi"
	apperrors "github.com/spec-kit/hr-console/pkg/util"
)

// Forwarder relays raw requests to the HR API.
type Forwarder interface {
	Forward(ctx context.Context, method, path, rawQuery string, body []byte, contentType string) (hrapi.ProxyResponse, error)
}

// ProxyHandler passes console data calls through to the HR API with the session token
// attached. Upstream statuses, including 401 and 403, are relayed unchanged and never end
// the session.
type ProxyHandler struct {
	upstream Forwarder
}

// NewProxyHandler constructs handler.
func NewProxyHandler(upstream Forwarder) *ProxyHandler {
	return &ProxyHandler{upstream: upstream}
}

// Forward handles ANY /api/*.
func (h *ProxyHandler) Forward(c *fiber.Ctx) error {
	resp, err := h.upstream.Forward(
		c.UserContext(),
		c.Method(),
		c.Params("*"),
		string(c.Request().URI().QueryString()),
		c.Body(),
		c.Get(fiber.HeaderContentType),
	)
	if err != nil {
		return apperrors.NewUpstreamUnavailable(err)
	}

	if contentType := resp.Header.Get(fiber.HeaderContentType); contentType != "" {
		c.Set(fiber.HeaderContentType, contentType)
	}
	return c.Status(resp.StatusCode).Send(resp.Body)
}
