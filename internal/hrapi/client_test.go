package hrapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/spec-kit/hr-console/internal/domain"
	"github.com/spec-kit/hr-console/internal/observability"
	"github.com/spec-kit/hr-console/internal/session"
)

type fakeHRAPI struct {
	*httptest.Server
	lastAuth string
	lastBody []byte
	lastPath string
	handler  func(w http.ResponseWriter, r *http.Request)
}

func newFakeHRAPI(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *fakeHRAPI {
	t.Helper()
	f := &fakeHRAPI{handler: handler}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.lastAuth = r.Header.Get("Authorization")
		f.lastPath = r.URL.RequestURI()
		f.lastBody, _ = io.ReadAll(r.Body)
		f.handler(w, r)
	}))
	t.Cleanup(f.Close)
	return f
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := NewClient(baseURL+"/api", 5*time.Second, observability.NewMetrics(), zaptest.NewLogger(t))
	require.NoError(t, err)
	return client
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestClient_Login(t *testing.T) {
	api := newFakeHRAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"token": "jwt-token",
			"user": map[string]any{
				"email":                 "hr@example.com",
				"firstName":             "Grace",
				"lastName":              "Hopper",
				"role":                  "HrManager",
				"initialSetup":          true,
				"passwordChangedStatus": false,
				"isOnboardingComplete":  true,
			},
		})
	})
	client := newTestClient(t, api.URL)

	ctx := session.WithSession(context.Background(), domain.Session{Token: "stale"})
	resp, err := client.Login(ctx, LoginRequest{Email: "hr@example.com", Password: "secret", IsAdmin: false})
	require.NoError(t, err)

	assert.Equal(t, "/api/auth/login", api.lastPath)
	assert.Empty(t, api.lastAuth, "login never carries a token")
	assert.JSONEq(t, `{"email":"hr@example.com","password":"secret","isAdmin":false}`, string(api.lastBody))
	assert.Equal(t, "jwt-token", resp.Token)
	assert.Equal(t, "HrManager", resp.User.Role)
	assert.True(t, resp.User.InitialSetup)
	assert.True(t, resp.User.IsOnboardingComplete)
}

func TestClient_LoginRejected(t *testing.T) {
	statuses := []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusInternalServerError}
	for _, status := range statuses {
		t.Run(http.StatusText(status), func(t *testing.T) {
			api := newFakeHRAPI(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, status, []ErrorEntry{{Code: "Auth.Invalid", Description: "Invalid credentials"}})
			})
			client := newTestClient(t, api.URL)

			_, err := client.Login(context.Background(), LoginRequest{Email: "a@b.c", Password: "x"})
			assert.ErrorIs(t, err, ErrAuthenticationFailed)
		})
	}
}

func TestClient_LoginWithoutToken(t *testing.T) {
	api := newFakeHRAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"user": map[string]any{"email": "a@b.c"}})
	})
	client := newTestClient(t, api.URL)

	_, err := client.Login(context.Background(), LoginRequest{Email: "a@b.c", Password: "x"})
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestClient_TransportFailure(t *testing.T) {
	api := newFakeHRAPI(t, func(w http.ResponseWriter, r *http.Request) {})
	client := newTestClient(t, api.URL)
	api.Close()

	_, err := client.Login(context.Background(), LoginRequest{Email: "a@b.c", Password: "x"})
	assert.ErrorIs(t, err, ErrTransport)
	assert.False(t, errors.Is(err, ErrAuthenticationFailed))

	err = client.ChangePassword(context.Background(), "old", "new")
	assert.ErrorIs(t, err, ErrTransport)
}

func TestClient_AttachesSessionToken(t *testing.T) {
	api := newFakeHRAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	client := newTestClient(t, api.URL)
	ctx := session.WithSession(context.Background(), domain.Session{Token: "abc"})

	require.NoError(t, client.ChangePassword(ctx, "old", "new"))
	assert.Equal(t, "/api/auth/change-password", api.lastPath)
	assert.Equal(t, "Bearer abc", api.lastAuth)
	assert.JSONEq(t, `{"oldPassword":"old","newPassword":"new"}`, string(api.lastBody))

	setup := domain.SetupModel{
		Departments:     []domain.Department{{Name: "Finance"}},
		Taxes:           []domain.Tax{{TaxName: "VAT", TaxPercentage: 7.5}},
		DefaultCurrency: "NGN",
		WorkweekDays:    "Monday-Friday",
	}
	require.NoError(t, client.CompleteSetup(ctx, setup))
	assert.Equal(t, "/api/setups/setup", api.lastPath)

	require.NoError(t, client.CompleteOnboarding(ctx, domain.OnboardingSubmission{Nationality: "Nigerian"}))
	assert.Equal(t, "/api/onboarding/onboard", api.lastPath)
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		unauthorized bool
		messages     []string
	}{
		{name: "list body", status: http.StatusBadRequest, body: `[{"code":"P1","description":"Password too short"},{"code":"P2","description":"Needs a digit"}]`, messages: []string{"Password too short", "Needs a digit"}},
		{name: "single object", status: http.StatusConflict, body: `{"code":"Setup.Done","description":"Setup already completed"}`, messages: []string{"Setup already completed"}},
		{name: "plain text", status: http.StatusInternalServerError, body: `boom`, messages: []string{"boom"}},
		{name: "unauthorized", status: http.StatusUnauthorized, body: ``, unauthorized: true},
		{name: "forbidden", status: http.StatusForbidden, body: `[]`, unauthorized: true, messages: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeHRAPI(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			client := newTestClient(t, api.URL)

			err := client.ChangePassword(context.Background(), "old", "new")
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.messages, apiErr.Messages)
			assert.Equal(t, tt.unauthorized, errors.Is(err, ErrUnauthorized))
		})
	}
}

func TestClient_Forward(t *testing.T) {
	api := newFakeHRAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusForbidden, []ErrorEntry{{Description: "not yours"}})
	})
	client := newTestClient(t, api.URL)
	ctx := session.WithSession(context.Background(), domain.Session{Token: "abc"})

	resp, err := client.Forward(ctx, http.MethodPost, "/employees/list", "page=2", []byte(`{"q":1}`), "application/json")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Contains(t, string(resp.Body), "not yours")
	assert.Equal(t, "/api/employees/list?page=2", api.lastPath)
	assert.Equal(t, "Bearer abc", api.lastAuth)
	assert.Equal(t, `{"q":1}`, string(api.lastBody))
}

func TestNewClient_RejectsRelativeBase(t *testing.T) {
	_, err := NewClient("api/", time.Second, nil, zaptest.NewLogger(t))
	assert.Error(t, err)
}
