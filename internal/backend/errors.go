package backend

import (
	"errors"
	"fmt"
)

// Error taxonomy for calls against the POS backend.
var (
	// ErrInvalidCredentials means the server rejected a login or register
	// attempt. Surfaced to the caller for form display.
	ErrInvalidCredentials = errors.New("backend: invalid credentials")

	// ErrAuthorizationExpired means the server rejected the presented
	// access token. The resilient client resolves this internally with a
	// single refresh-and-retry.
	ErrAuthorizationExpired = errors.New("backend: authorization expired")

	// ErrNetwork covers transport-level failures, including an open
	// circuit breaker.
	ErrNetwork = errors.New("backend: network failure")
)

// StatusError is a non-authorization rejection from the server, carrying
// the body's detail message when one was present.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend: server returned %d", e.StatusCode)
	}
	return fmt.Sprintf("backend: server returned %d: %s", e.StatusCode, e.Message)
}
