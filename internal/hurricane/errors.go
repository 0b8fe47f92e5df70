package hurricane

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized matches any API error caused by a missing or expired session.
var ErrUnauthorized = errors.New("unauthorized")

// APIError is a non-2xx response from the Hurricane API.
type APIError struct {
	Op      string // operation label, e.g. "leads.get"
	Status  int
	Message string // from the error envelope, or the operation's fallback
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.Status)
	}
	return fmt.Sprintf("%s returned status %d", e.Op, e.Status)
}

// Is lets errors.Is(err, ErrUnauthorized) match 401 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// errorEnvelope is the body the API sends with non-2xx responses.
type errorEnvelope struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e errorEnvelope) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

// envelope is the body the API sends with 2xx responses.
type envelope[T any] struct {
	Data T `json:"data"`
}

// userMessage picks the text shown to the user for a failed call. API errors
// carry their own message; anything else (transport, decoding, validation)
// falls back to the operation's generic wording.
func userMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
