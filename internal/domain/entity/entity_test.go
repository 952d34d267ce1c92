package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser_RequiresHash(t *testing.T) {
	u, err := NewUser("a@example.com", "A", "  ")
	assert.ErrorIs(t, err, ErrMissingPasswordHash)
	assert.Nil(t, u)

	u, err = NewUser("a@example.com", "A", "$2a$10$abc")
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", u.Email)
	assert.Equal(t, "$2a$10$abc", u.PasswordHash)
}

func TestNewTask(t *testing.T) {
	_, err := NewTask("", "t", "d")
	assert.ErrorIs(t, err, ErrMissingOwner)

	task, err := NewTask("owner-1", "Finish project", "write docs")
	require.NoError(t, err)
	assert.False(t, task.Completed)
	assert.True(t, task.OwnedBy("owner-1"))
	assert.False(t, task.OwnedBy("owner-2"))
	assert.False(t, task.OwnedBy(""))
}
