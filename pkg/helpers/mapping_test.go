package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/go-task-tracker/pkg/mailer"
)

func TestEnsureRecipientAndEmail(t *testing.T) {
	job := mailer.EmailJob{To: "a@example.com"}
	EnsureRecipientAndEmail(&job)
	assert.Equal(t, "a@example.com", job.Data["Email"])
	assert.Equal(t, "a@example.com", job.Data["RecipientEmail"])

	job = mailer.EmailJob{To: "a@example.com", Data: map[string]any{"Email": "b@example.com"}}
	EnsureRecipientAndEmail(&job)
	assert.Equal(t, "b@example.com", job.Data["Email"])
	assert.Equal(t, "a@example.com", job.Data["RecipientEmail"])
}

func TestFallbackSubject(t *testing.T) {
	assert.Equal(t, "Welcome aboard", FallbackSubject("WELCOME"))
	assert.Equal(t, "Notification", FallbackSubject("other"))
}
