// Package apperr defines the sentinel errors shared across services and
// handlers, plus the mapping from those errors to HTTP status codes.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrValidation marks malformed or missing input.
	ErrValidation = errors.New("validation error")
	// ErrConflict marks a duplicate unique key (e.g. email already taken).
	ErrConflict = errors.New("conflict")
	// ErrAuthentication marks missing/invalid/expired tokens or bad credentials.
	ErrAuthentication = errors.New("authentication error")
	// ErrAuthorization marks a valid identity acting on a resource it does not own.
	ErrAuthorization = errors.New("authorization error")
	// ErrNotFound marks a missing resource.
	ErrNotFound = errors.New("not found")
)

// Validation wraps ErrValidation with a human-readable message.
func Validation(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// Conflict wraps ErrConflict with a human-readable message.
func Conflict(msg string) error {
	return fmt.Errorf("%w: %s", ErrConflict, msg)
}

// Authentication wraps ErrAuthentication with a human-readable message.
func Authentication(msg string) error {
	return fmt.Errorf("%w: %s", ErrAuthentication, msg)
}

// Authorization wraps ErrAuthorization with a human-readable message.
func Authorization(msg string) error {
	return fmt.Errorf("%w: %s", ErrAuthorization, msg)
}

// NotFound wraps ErrNotFound with a human-readable message.
func NotFound(msg string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, msg)
}

// Status returns the HTTP status code for err. Unknown errors map to 500.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrAuthentication):
		return http.StatusUnauthorized
	case errors.Is(err, ErrAuthorization):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Message strips the sentinel prefix from a wrapped error, leaving only the
// client-facing message. Errors that were not wrapped here pass through as-is.
func Message(err error) string {
	for _, sentinel := range []error{ErrValidation, ErrConflict, ErrAuthentication, ErrAuthorization, ErrNotFound} {
		if errors.Is(err, sentinel) {
			prefix := sentinel.Error() + ": "
			if len(err.Error()) > len(prefix) && err.Error()[:len(prefix)] == prefix {
				return err.Error()[len(prefix):]
			}
			return err.Error()
		}
	}
	return err.Error()
}
