package hrapi

import (
	"context"
	"net/http"
)

// TokenInjector attaches the bearer token of the request's session to outgoing calls.
type TokenInjector struct {
	Base  http.RoundTripper
	Token func(ctx context.Context) string
}

// RoundTrip implements http.RoundTripper. Requests without a token pass through unmodified.
func (t *TokenInjector) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	token := ""
	if t.Token != nil {
		token = t.Token(req.Context())
	}
	if token == "" {
		return base.RoundTrip(req)
	}

	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+token)
	return base.RoundTrip(clone)
}
