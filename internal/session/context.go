package session

import (
	"context"

	"github.com/spec-kit/hr-console/internal/domain"
)

type ctxKey struct{}

type ctxValue struct {
	session domain.Session
	ok      bool
}

// WithSession returns a context carrying an immutable snapshot of the session.
func WithSession(ctx context.Context, s domain.Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, ctxValue{session: s, ok: true})
}

// Detach returns a context that explicitly carries no session.
func Detach(ctx context.Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, ctxValue{})
}

// FromContext returns the session snapshot stored in ctx.
func FromContext(ctx context.Context) (domain.Session, bool) {
	if ctx == nil {
		return domain.Session{}, false
	}
	v, ok := ctx.Value(ctxKey{}).(ctxValue)
	if !ok || !v.ok {
		return domain.Session{}, false
	}
	return v.session, true
}

// TokenFromContext returns the bearer token of the session in ctx, or "".
func TokenFromContext(ctx context.Context) string {
	s, ok := FromContext(ctx)
	if !ok {
		return ""
	}
	return s.Token
}
