package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusAndMessage(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation", ErrValidation, http.StatusBadRequest, "invalid request parameters"},
		{"conflict with message", New(ErrConflict, "email already registered"), http.StatusBadRequest, "email already registered"},
		{"unauthenticated wrapped", fmt.Errorf("verify: %w", ErrUnauthenticated), http.StatusUnauthorized, "not authorized"},
		{"not found wrapped message", fmt.Errorf("load: %w", New(ErrNotFound, "task not found")), http.StatusNotFound, "task not found"},
		{"unexpected", errors.New("connection reset by peer"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, HTTPStatus(tt.err))
			assert.Equal(t, tt.wantMsg, PublicMessage(tt.err))
		})
	}
}

func TestErrorIsKind(t *testing.T) {
	err := New(ErrNotFound, "user not found")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrConflict)
	assert.Equal(t, http.StatusOK, HTTPStatus(nil))
}
