package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/hr-console/internal/config"
	"github.com/spec-kit/hr-console/internal/domain"
	"github.com/spec-kit/hr-console/internal/hrapi"
	apperrors "github.com/spec-kit/hr-console/pkg/util"
)

type fakeIdentity struct {
	loginResp   hrapi.LoginResponse
	loginErr    error
	changeErr   error
	loginCalls  []hrapi.LoginRequest
	changeCalls int
}

func (f *fakeIdentity) Login(_ context.Context, req hrapi.LoginRequest) (hrapi.LoginResponse, error) {
	f.loginCalls = append(f.loginCalls, req)
	return f.loginResp, f.loginErr
}

func (f *fakeIdentity) ChangePassword(context.Context, string, string) error {
	f.changeCalls++
	return f.changeErr
}

func newAuthService(identity IdentityProvider, now time.Time) *AuthService {
	svc := NewAuthService(config.Config{Session: config.SessionConfig{TTLMinutes: 60}}, identity)
	svc.now = func() time.Time { return now }
	return svc
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp.Unix()}).SignedString([]byte("hr-api"))
	require.NoError(t, err)
	return token
}

func TestAuthService_Login(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	exp := now.Add(2 * time.Hour)
	identity := &fakeIdentity{loginResp: hrapi.LoginResponse{
		Token: signedToken(t, exp),
		User: hrapi.Identity{
			Email:                "hr@example.com",
			FirstName:            "Grace",
			LastName:             "Hopper",
			Role:                 "HrManager",
			InitialSetup:         true,
			PasswordChanged:      true,
			IsOnboardingComplete: false,
		},
	}}
	svc := newAuthService(identity, now)

	s, err := svc.Login(context.Background(), " hr@example.com ", "secret", true)
	require.NoError(t, err)

	require.Len(t, identity.loginCalls, 1)
	assert.Equal(t, hrapi.LoginRequest{Email: "hr@example.com", Password: "secret", IsAdmin: true}, identity.loginCalls[0])
	assert.Equal(t, domain.RoleHrManager, s.Role)
	assert.Equal(t, "Grace Hopper", s.FullName())
	assert.True(t, s.InitialSetupComplete)
	assert.True(t, s.PasswordChanged)
	assert.False(t, s.OnboardingComplete)
	assert.Equal(t, now, s.IssuedAt)
	assert.Equal(t, exp.Unix(), s.ExpiresAt.Unix())
}

func TestAuthService_LoginFallsBackToTTL(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	identity := &fakeIdentity{loginResp: hrapi.LoginResponse{
		Token: "opaque-token",
		User:  hrapi.Identity{Role: "Janitor"},
	}}
	svc := newAuthService(identity, now)

	s, err := svc.Login(context.Background(), "x@example.com", "secret", false)
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), s.ExpiresAt)
	assert.Equal(t, domain.Role("Janitor"), s.Role, "unknown roles are kept verbatim")
	assert.Equal(t, "x@example.com", s.Email)
}

func TestAuthService_LoginValidation(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		field    string
	}{
		{name: "missing email", email: "", password: "secret", field: "email"},
		{name: "invalid email", email: "not-an-email", password: "secret", field: "email"},
		{name: "missing password", email: "a@example.com", password: "", field: "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity := &fakeIdentity{}
			svc := newAuthService(identity, time.Now())

			_, err := svc.Login(context.Background(), tt.email, tt.password, false)
			de := apperrors.ToDomainError(err)
			require.NotNil(t, de)
			assert.Equal(t, "VALIDATION_FAILED", de.Code)
			assert.Contains(t, de.Details["fields"], tt.field)
			assert.Empty(t, identity.loginCalls, "invalid input never reaches the HR API")
		})
	}
}

func TestAuthService_LoginFailures(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
		wantMsg  string
	}{
		{
			name:     "rejected credentials",
			err:      fmt.Errorf("%w: %w", hrapi.ErrAuthenticationFailed, &hrapi.APIError{StatusCode: http.StatusBadRequest}),
			wantCode: "AUTHENTICATION_FAILED",
			wantMsg:  "Invalid email or password",
		},
		{
			name:     "network failure",
			err:      fmt.Errorf("%w: dial tcp", hrapi.ErrTransport),
			wantCode: "UPSTREAM_UNAVAILABLE",
			wantMsg:  "Something went wrong, please try again",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newAuthService(&fakeIdentity{loginErr: tt.err}, time.Now())
			s, err := svc.Login(context.Background(), "a@example.com", "secret", false)
			assert.Equal(t, domain.Session{}, s)
			de := apperrors.ToDomainError(err)
			assert.Equal(t, tt.wantCode, de.Code)
			assert.Equal(t, tt.wantMsg, de.Message)
		})
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	tests := []struct {
		name        string
		oldPassword string
		newPassword string
		changeErr   error
		wantCode    string
		wantCalls   int
	}{
		{name: "success", oldPassword: "a", newPassword: "b", wantCalls: 1},
		{name: "missing old", oldPassword: "", newPassword: "b", wantCode: "VALIDATION_FAILED"},
		{name: "missing new", oldPassword: "a", newPassword: "", wantCode: "VALIDATION_FAILED"},
		{name: "same password", oldPassword: "a", newPassword: "a", wantCode: "VALIDATION_FAILED"},
		{
			name: "upstream rejects", oldPassword: "a", newPassword: "b", wantCalls: 1, wantCode: "UPSTREAM_ERROR",
			changeErr: &hrapi.APIError{StatusCode: http.StatusBadRequest, Messages: []string{"Password too weak"}},
		},
		{
			name: "upstream unauthorized", oldPassword: "a", newPassword: "b", wantCalls: 1, wantCode: "UNAUTHORIZED",
			changeErr: &hrapi.APIError{StatusCode: http.StatusUnauthorized},
		},
		{
			name: "upstream forbidden", oldPassword: "a", newPassword: "b", wantCalls: 1, wantCode: "FORBIDDEN",
			changeErr: &hrapi.APIError{StatusCode: http.StatusForbidden, Messages: []string{"nope"}},
		},
		{
			name: "unexpected", oldPassword: "a", newPassword: "b", wantCalls: 1, wantCode: "INTERNAL_ERROR",
			changeErr: errors.New("decode failure"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity := &fakeIdentity{changeErr: tt.changeErr}
			svc := newAuthService(identity, time.Now())

			err := svc.ChangePassword(context.Background(), tt.oldPassword, tt.newPassword)
			assert.Equal(t, tt.wantCalls, identity.changeCalls)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.wantCode, apperrors.ToDomainError(err).Code)
		})
	}
}
