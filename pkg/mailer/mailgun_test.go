package mailer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMailgun_RequiresConfig(t *testing.T) {
	m := NewMailgun("", "key", "noreply@example.com")
	err := m.Send(context.Background(), "a@example.com", "s", "t", "")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
