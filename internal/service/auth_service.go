package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/spec-kit/hr-console/internal/auth"
	"github.com/spec-kit/hr-console/internal/config"
	"github.com/spec-kit/hr-console/internal/domain"
	"github.com/spec-kit/hr-console/internal/hrapi"
	apperrors "github.com/spec-kit/hr-console/pkg/util"
)

const invalidCredentialsMessage = "Invalid email or password"

// IdentityProvider is the part of the HR API that authenticates users.
type IdentityProvider interface {
	Login(ctx context.Context, req hrapi.LoginRequest) (hrapi.LoginResponse, error)
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error
}

// AuthService coordinates login and password change flows against the HR API.
type AuthService struct {
	identity IdentityProvider
	tokens   *auth.TokenInspector
	ttl      time.Duration
	now      func() time.Time
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, identity IdentityProvider) *AuthService {
	return &AuthService{
		identity: identity,
		tokens:   auth.NewTokenInspector(),
		ttl:      cfg.Session.TTL(),
		now:      time.Now,
	}
}

// Login authenticates the user and returns the session to create. Rejected credentials never
// produce a session.
func (s *AuthService) Login(ctx context.Context, email, password string, isAdmin bool) (domain.Session, error) {
	email = strings.TrimSpace(email)
	fields := map[string]string{}
	if email == "" {
		fields["email"] = "Email is required"
	} else if _, err := mail.ParseAddress(email); err != nil {
		fields["email"] = "Invalid email address"
	}
	if password == "" {
		fields["password"] = "Password is required"
	}
	if len(fields) > 0 {
		return domain.Session{}, apperrors.NewValidationError("invalid login request", map[string]any{"fields": fields})
	}

	resp, err := s.identity.Login(ctx, hrapi.LoginRequest{Email: email, Password: password, IsAdmin: isAdmin})
	if err != nil {
		if errors.Is(err, hrapi.ErrTransport) {
			return domain.Session{}, apperrors.NewUpstreamUnavailable(err)
		}
		return domain.Session{}, apperrors.NewAuthenticationFailed(invalidCredentialsMessage)
	}

	now := s.now()
	user := resp.User
	if user.Email == "" {
		user.Email = email
	}
	return domain.Session{
		Email:                user.Email,
		Token:                resp.Token,
		RefreshToken:         resp.RefreshToken,
		FirstName:            user.FirstName,
		LastName:             user.LastName,
		Role:                 domain.Role(user.Role),
		InitialSetupComplete: user.InitialSetup,
		PasswordChanged:      user.PasswordChanged,
		OnboardingComplete:   user.IsOnboardingComplete,
		IssuedAt:             now,
		ExpiresAt:            s.tokens.ExpiryOr(resp.Token, now, s.ttl),
	}, nil
}

// ChangePassword replaces the password of the session user. The caller ends the session on
// success.
func (s *AuthService) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	fields := map[string]string{}
	if oldPassword == "" {
		fields["oldPassword"] = "Current password is required"
	}
	if newPassword == "" {
		fields["newPassword"] = "New password is required"
	} else if newPassword == oldPassword {
		fields["newPassword"] = "New password must differ from the current password"
	}
	if len(fields) > 0 {
		return apperrors.NewValidationError("invalid password change", map[string]any{"fields": fields})
	}

	return upstreamError(s.identity.ChangePassword(ctx, oldPassword, newPassword))
}

// upstreamError converts HR API client errors into domain errors. 401 and 403 answers are
// surfaced as errors and never end the session.
func upstreamError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, hrapi.ErrTransport) {
		return apperrors.NewUpstreamUnavailable(err)
	}

	var apiErr *hrapi.APIError
	if errors.As(err, &apiErr) {
		if errors.Is(apiErr, hrapi.ErrUnauthorized) {
			message := "not authorized to perform this action"
			if len(apiErr.Messages) > 0 {
				message = apiErr.Messages[0]
			}
			if apiErr.StatusCode == 403 {
				return apperrors.NewForbidden(message)
			}
			return apperrors.NewUnauthorized(message)
		}
		return apperrors.NewUpstreamError(apiErr.StatusCode, apiErr.Messages)
	}
	return apperrors.NewInternalError(err)
}
