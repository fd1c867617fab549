package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("hr-api-secret"))
	require.NoError(t, err)
	return token
}

func TestTokenInspector_Expiry(t *testing.T) {
	ti := NewTokenInspector()
	exp := time.Now().Add(time.Hour).Truncate(time.Second)

	t.Run("jwt with exp", func(t *testing.T) {
		token := signedToken(t, jwt.RegisteredClaims{
			Subject:   "hr@example.com",
			ExpiresAt: jwt.NewNumericDate(exp),
		})
		got, err := ti.Expiry(token)
		require.NoError(t, err)
		assert.True(t, exp.Equal(got))
	})

	t.Run("already expired jwt still reports exp", func(t *testing.T) {
		past := time.Now().Add(-time.Hour).Truncate(time.Second)
		token := signedToken(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(past)})
		got, err := ti.Expiry(token)
		require.NoError(t, err)
		assert.True(t, past.Equal(got))
	})

	t.Run("jwt without exp", func(t *testing.T) {
		token := signedToken(t, jwt.RegisteredClaims{Subject: "x"})
		_, err := ti.Expiry(token)
		assert.ErrorIs(t, err, ErrNoExpiry)
	})

	t.Run("opaque token", func(t *testing.T) {
		_, err := ti.Expiry("not-a-jwt")
		assert.Error(t, err)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := ti.Expiry("")
		assert.ErrorIs(t, err, ErrNoExpiry)
	})
}

func TestTokenInspector_ExpiryOr(t *testing.T) {
	ti := NewTokenInspector()
	now := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, now.Add(8*time.Hour), ti.ExpiryOr("opaque", now, 8*time.Hour))

	exp := now.Add(30 * time.Minute)
	token := signedToken(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)})
	assert.True(t, exp.Equal(ti.ExpiryOr(token, now, 8*time.Hour)))
}
