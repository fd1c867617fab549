package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/hr-console/internal/domain"
)

func TestContextSnapshot(t *testing.T) {
	ctx := context.Background()

	_, ok := FromContext(ctx)
	assert.False(t, ok)
	assert.Empty(t, TokenFromContext(ctx))

	ctx = WithSession(ctx, domain.Session{Email: "e@example.com", Token: "abc"})
	s, ok := FromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "e@example.com", s.Email)
	assert.Equal(t, "abc", TokenFromContext(ctx))

	detached := Detach(ctx)
	_, ok = FromContext(detached)
	assert.False(t, ok)
	assert.Empty(t, TokenFromContext(detached))

	//nolint:staticcheck // nil context is part of the contract
	_, ok = FromContext(nil)
	assert.False(t, ok)
}
