package entity

import (
	"errors"
	"strings"
	"time"
)

var ErrMissingPasswordHash = errors.New("user requires a password hash")

// User is the aggregate root for the identity domain.
// PasswordHash always holds a bcrypt digest, never the raw secret.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser builds a user that is ready to be persisted. The caller hashes the
// password first; there is no persistence hook that does it implicitly.
func NewUser(email, name, passwordHash string) (*User, error) {
	if strings.TrimSpace(passwordHash) == "" {
		return nil, ErrMissingPasswordHash
	}
	return &User{
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
	}, nil
}
