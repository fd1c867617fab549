package hrapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/hr-console/internal/domain"
	"github.com/spec-kit/hr-console/internal/observability"
	"github.com/spec-kit/hr-console/internal/session"
)

const maxBodyBytes = 10 << 20

const (
	outcomeOK           = "ok"
	outcomeRejected     = "rejected"
	outcomeUnauthorized = "unauthorized"
	outcomeTransport    = "transport_error"
)

// Client is the HR API client. Every call carries the session token of its context.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewClient creates a client rooted at baseURL. metrics may be nil.
func NewClient(baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *zap.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse hr api base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("hr api base url %q must be absolute", baseURL)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	return &Client{
		baseURL: base,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &TokenInjector{
				Base:  http.DefaultTransport,
				Token: session.TokenFromContext,
			},
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		metrics: metrics,
		logger:  logger,
	}, nil
}

// Login exchanges credentials for a bearer token. It runs detached from any session so a
// stale token is never attached.
func (c *Client) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	var out LoginResponse
	err := c.call(session.Detach(ctx), "login", http.MethodPost, "auth/login", req, &out)
	if err != nil {
		if errors.Is(err, ErrTransport) {
			return LoginResponse{}, err
		}
		return LoginResponse{}, fmt.Errorf("%w: %w", ErrAuthenticationFailed, err)
	}
	if out.Token == "" {
		return LoginResponse{}, fmt.Errorf("%w: response carried no token", ErrAuthenticationFailed)
	}
	return out, nil
}

// ChangePassword replaces the password of the session user.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	body := ChangePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword}
	return c.call(ctx, "change_password", http.MethodPost, "auth/change-password", body, nil)
}

// CompleteSetup submits the initial organization setup.
func (c *Client) CompleteSetup(ctx context.Context, setup domain.SetupModel) error {
	return c.call(ctx, "setup", http.MethodPost, "setups/setup", setup, nil)
}

// CompleteOnboarding submits the employee onboarding form.
func (c *Client) CompleteOnboarding(ctx context.Context, submission domain.OnboardingSubmission) error {
	return c.call(ctx, "onboarding", http.MethodPost, "onboarding/onboard", submission, nil)
}

// Forward relays a request to the HR API and returns the upstream answer whatever its status.
// Only transport failures are errors.
func (c *Client) Forward(ctx context.Context, method, path, rawQuery string, body []byte, contentType string) (ProxyResponse, error) {
	target := c.resolve(path)
	target.RawQuery = rawQuery

	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return ProxyResponse{}, fmt.Errorf("build proxy request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.RecordUpstream("proxy", outcomeTransport)
		return ProxyResponse{}, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		c.metrics.RecordUpstream("proxy", outcomeTransport)
		return ProxyResponse{}, fmt.Errorf("%w: read body: %w", ErrTransport, err)
	}

	c.metrics.RecordUpstream("proxy", outcomeFor(resp.StatusCode))
	return ProxyResponse{StatusCode: resp.StatusCode, Header: resp.Header.Clone(), Body: payload}, nil
}

func (c *Client) call(ctx context.Context, op, method, path string, body, target any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal %s request: %w", op, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolve(path).String(), reader)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.RecordUpstream(op, outcomeTransport)
		c.logger.Warn("hr api call failed", zap.String("operation", op), zap.Error(err))
		return fmt.Errorf("%w: %s: %w", ErrTransport, op, err)
	}
	defer resp.Body.Close()

	outcome := outcomeFor(resp.StatusCode)
	c.metrics.RecordUpstream(op, outcome)
	c.logger.Debug("hr api call",
		zap.String("operation", op),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if outcome != outcomeOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		return &APIError{StatusCode: resp.StatusCode, Messages: parseMessages(payload)}
	}

	if target != nil {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return fmt.Errorf("failed to decode %s response: %w", op, err)
		}
	}
	return nil
}

func (c *Client) resolve(path string) *url.URL {
	return c.baseURL.ResolveReference(&url.URL{Path: strings.TrimLeft(path, "/")})
}

func outcomeFor(status int) string {
	switch {
	case status >= 200 && status < 300:
		return outcomeOK
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return outcomeUnauthorized
	default:
		return outcomeRejected
	}
}
