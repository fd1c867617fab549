package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// ErrNoExpiry is returned when a bearer token carries no usable exp claim.
var ErrNoExpiry = errors.New("token has no expiry")

// TokenInspector reads claims from HR API bearer tokens without verifying them.
// The HR API remains the authority on validity; the console only needs the expiry.
type TokenInspector struct {
	parser *jwt.Parser
}

// NewTokenInspector builds an inspector.
func NewTokenInspector() *TokenInspector {
	return &TokenInspector{parser: jwt.NewParser()}
}

// Expiry returns the exp claim of a JWT bearer token.
func (ti *TokenInspector) Expiry(tokenStr string) (time.Time, error) {
	if tokenStr == "" {
		return time.Time{}, ErrNoExpiry
	}
	claims := jwt.MapClaims{}
	if _, _, err := ti.parser.ParseUnverified(tokenStr, claims); err != nil {
		return time.Time{}, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, err
	}
	if exp == nil {
		return time.Time{}, ErrNoExpiry
	}
	return exp.Time, nil
}

// ExpiryOr returns the token expiry, or now+fallback when the token is opaque or has no exp.
func (ti *TokenInspector) ExpiryOr(tokenStr string, now time.Time, fallback time.Duration) time.Time {
	exp, err := ti.Expiry(tokenStr)
	if err != nil {
		return now.Add(fallback)
	}
	return exp
}
