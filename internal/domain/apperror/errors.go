// Package apperror holds the error taxonomy shared by services and the HTTP layer.
package apperror

import (
	"errors"
	"net/http"
)

var (
	// ErrValidation marks malformed or missing input.
	ErrValidation = errors.New("invalid request parameters")
	// ErrUnauthenticated marks bad credentials and bad or expired tokens.
	ErrUnauthenticated = errors.New("not authorized")
	// ErrNotFound marks missing resources and resources owned by someone else.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks uniqueness violations such as a duplicate email.
	ErrConflict = errors.New("conflict")
)

const internalMessage = "internal server error"

// Error carries a client-facing message on top of one of the kinds above.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func New(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// HTTPStatus maps an error to its response status. Anything outside the
// taxonomy is an unexpected failure.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation), errors.Is(err, ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the message that is safe to show a client.
// Unexpected errors never leak their detail.
func PublicMessage(err error) string {
	if HTTPStatus(err) == http.StatusInternalServerError {
		return internalMessage
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	for _, kind := range []error{ErrValidation, ErrUnauthenticated, ErrNotFound, ErrConflict} {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}
	return internalMessage
}
