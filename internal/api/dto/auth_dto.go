package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spec-kit/hr-console/internal/domain"
)

// LoginRequest payload for POST /auth/login, accepted as JSON or form data.
type LoginRequest struct {
	Email    string   `json:"email" form:"email"`
	Password string   `json:"password" form:"password"`
	IsAdmin  Checkbox `json:"isAdmin" form:"isAdmin"`
}

// Checkbox is a boolean that also accepts the "on" value HTML checkboxes submit.
type Checkbox bool

// UnmarshalText parses form values.
func (b *Checkbox) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "on", "yes":
		*b = true
		return nil
	case "", "off", "no":
		*b = false
		return nil
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid checkbox value %q", text)
	}
	*b = Checkbox(parsed)
	return nil
}

// UnmarshalJSON accepts JSON booleans as well as the form spellings.
func (b *Checkbox) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var v bool
	if err := json.Unmarshal(data, &v); err == nil {
		*b = Checkbox(v)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid checkbox value %s", data)
	}
	return b.UnmarshalText([]byte(s))
}

// ChangePasswordRequest payload for POST /auth/change-password.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" form:"oldPassword"`
	NewPassword string `json:"newPassword" form:"newPassword"`
}

// UserResponse is the public view of the session user. The bearer token is never exposed.
type UserResponse struct {
	Email                string      `json:"email"`
	FirstName            string      `json:"firstName"`
	LastName             string      `json:"lastName"`
	FullName             string      `json:"fullName"`
	Role                 domain.Role `json:"role"`
	InitialSetupComplete bool        `json:"initialSetupComplete"`
	OnboardingComplete   bool        `json:"onboardingComplete"`
	PasswordChanged      bool        `json:"passwordChanged"`
	ExpiresAt            time.Time   `json:"expiresAt"`
}

// RedirectResponse tells JSON clients where to navigate next.
type RedirectResponse struct {
	Redirect string        `json:"redirect"`
	User     *UserResponse `json:"user,omitempty"`
}

// NewUserResponse maps a session to its public view.
func NewUserResponse(s domain.Session) *UserResponse {
	return &UserResponse{
		Email:                s.Email,
		FirstName:            s.FirstName,
		LastName:             s.LastName,
		FullName:             s.FullName(),
		Role:                 s.Role,
		InitialSetupComplete: s.InitialSetupComplete,
		OnboardingComplete:   s.OnboardingComplete,
		PasswordChanged:      s.PasswordChanged,
		ExpiresAt:            s.ExpiresAt,
	}
}
