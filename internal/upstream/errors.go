package upstream

import (
	"errors"
	"fmt"
)

// ErrNotFound maps the backend's 404 responses (unknown slug, deleted
// record). Anything else non-2xx becomes a *StatusError; transport failures
// are returned wrapped and match neither.
var ErrNotFound = errors.New("upstream: not found")

// StatusError is a non-success HTTP response from the backend, with the
// backend's detail message when the body carried one.
type StatusError struct {
	Status int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("upstream: status %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("upstream: status %d", e.Status)
}

// AuthError is a rejected login or register. Detail carries the server's
// message so the form can show it verbatim.
type AuthError struct {
	Detail string
}

func (e *AuthError) Error() string {
	return "upstream: authentication failed: " + e.Detail
}

// errorDetail is the `{detail}` error body the backend uses everywhere.
type errorDetail struct {
	Detail string `json:"detail"`
}
