package events

import (
	"time"

	"github.com/spec-kit/hr-console/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSessionCreated   EventType = "session.created"
	EventSessionUpdated   EventType = "session.updated"
	EventSessionDestroyed EventType = "session.destroyed"
)

// DestroyReason records why a session ended.
type DestroyReason string

const (
	ReasonLogout          DestroyReason = "logout"
	ReasonPasswordChanged DestroyReason = "password_changed"
	ReasonExpired         DestroyReason = "expired"
	ReasonReplaced        DestroyReason = "replaced"
)

// Actor encapsulates the signed-in user an event concerns.
type Actor struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// Event represents a session lifecycle event.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Actor     Actor     `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}

// SessionCreatedPayload payload.
type SessionCreatedPayload struct {
	Store     string    `json:"store"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// SessionUpdatedPayload payload.
type SessionUpdatedPayload struct {
	InitialSetupComplete bool `json:"initial_setup_complete"`
	OnboardingComplete   bool `json:"onboarding_complete"`
}

// SessionDestroyedPayload payload.
type SessionDestroyedPayload struct {
	Reason DestroyReason `json:"reason"`
}
