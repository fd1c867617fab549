package hrapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrAuthenticationFailed is returned by Login for any non-success answer.
	ErrAuthenticationFailed = errors.New("hrapi: authentication failed")
	// ErrUnauthorized matches 401 and 403 answers outside login.
	ErrUnauthorized = errors.New("hrapi: unauthorized")
	// ErrTransport wraps network failures. Requests are never retried.
	ErrTransport = errors.New("hrapi: transport failure")
)

// APIError is a non-success HR API answer.
type APIError struct {
	StatusCode int
	Messages   []string
}

func (e *APIError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("hrapi: status %d", e.StatusCode)
	}
	return fmt.Sprintf("hrapi: status %d: %s", e.StatusCode, strings.Join(e.Messages, "; "))
}

// Is reports 401 and 403 answers as ErrUnauthorized.
func (e *APIError) Is(target error) bool {
	if target != ErrUnauthorized {
		return false
	}
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// parseMessages extracts human readable messages from an error body. The HR API answers
// with a list of {code, description}; a single object or a {message} body is also accepted.
func parseMessages(body []byte) []string {
	body = []byte(strings.TrimSpace(string(body)))
	if len(body) == 0 {
		return nil
	}

	var list []ErrorEntry
	if err := json.Unmarshal(body, &list); err == nil {
		return descriptions(list)
	}

	var single struct {
		ErrorEntry
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &single); err == nil {
		if single.Description != "" {
			return []string{single.Description}
		}
		if single.Message != "" {
			return []string{single.Message}
		}
		return nil
	}

	return []string{string(body)}
}

func descriptions(entries []ErrorEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		switch {
		case e.Description != "":
			out = append(out, e.Description)
		case e.Code != "":
			out = append(out, e.Code)
		}
	}
	return out
}
