package hrapi

import "net/http"

// LoginRequest is the credential payload of POST auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"isAdmin"`
}

// LoginResponse is the HR API answer to a successful login.
type LoginResponse struct {
	Token        string   `json:"token"`
	RefreshToken string   `json:"refreshToken,omitempty"`
	User         Identity `json:"user"`
}

// Identity is the user record embedded in the login response.
type Identity struct {
	Email                string `json:"email"`
	FirstName            string `json:"firstName"`
	LastName             string `json:"lastName"`
	Role                 string `json:"role"`
	InitialSetup         bool   `json:"initialSetup"`
	PasswordChanged      bool   `json:"passwordChangedStatus"`
	IsOnboardingComplete bool   `json:"isOnboardingComplete"`
}

// ChangePasswordRequest is the payload of POST auth/change-password.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// ErrorEntry is one element of an HR API error body.
type ErrorEntry struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// ProxyResponse is an upstream response relayed verbatim by Forward.
type ProxyResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}
