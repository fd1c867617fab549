package domain

import (
	"strings"
	"time"
)

// Session is the persisted identity of the user signed in on a device.
type Session struct {
	Email                string    `json:"email"`
	Token                string    `json:"token"`
	RefreshToken         string    `json:"refresh_token,omitempty"`
	FirstName            string    `json:"first_name"`
	LastName             string    `json:"last_name"`
	Role                 Role      `json:"role"`
	InitialSetupComplete bool      `json:"initial_setup_complete"`
	PasswordChanged      bool      `json:"password_changed"`
	OnboardingComplete   bool      `json:"onboarding_complete"`
	IssuedAt             time.Time `json:"issued_at"`
	ExpiresAt            time.Time `json:"expires_at,omitempty"`
}

// Expired reports whether the session is past its expiry. A zero ExpiresAt never expires.
func (s Session) Expired(now time.Time) bool {
	if s.ExpiresAt.IsZero() {
		return false
	}
	return !now.Before(s.ExpiresAt)
}

// FullName joins first and last name.
func (s Session) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}
