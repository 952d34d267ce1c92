package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oksasatya/go-task-tracker/pkg/helpers"
	"github.com/oksasatya/go-task-tracker/pkg/mailer"
	mailtpl "github.com/oksasatya/go-task-tracker/pkg/mailer/templates"
)

// Outcome tells the consumer what to do with a delivery.
type Outcome int

const (
	Ack Outcome = iota
	// Drop rejects without requeue: the message can never succeed.
	Drop
	// Retry rejects with requeue: the failure may be transient.
	Retry
)

func (o Outcome) String() string {
	switch o {
	case Ack:
		return "ack"
	case Drop:
		return "drop"
	case Retry:
		return "retry"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

var errNoRecipient = errors.New("email job has no recipient")

// EmailHandler renders queued EmailJobs and hands them to a Sender.
type EmailHandler struct {
	Sender      mailer.Sender
	SendTimeout time.Duration
}

func NewEmailHandler(sender mailer.Sender) *EmailHandler {
	return &EmailHandler{Sender: sender, SendTimeout: 15 * time.Second}
}

// Handle processes one message body. redelivered marks a message that already
// failed once; a second send failure drops it instead of looping forever.
func (h *EmailHandler) Handle(ctx context.Context, body []byte, redelivered bool) (Outcome, error) {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return Drop, fmt.Errorf("bad message: %w", err)
	}
	if strings.TrimSpace(job.To) == "" {
		return Drop, errNoRecipient
	}
	helpers.EnsureRecipientAndEmail(&job)

	subject, text, html, err := render(job)
	if err != nil {
		return Drop, err
	}

	c, cancel := context.WithTimeout(ctx, h.SendTimeout)
	defer cancel()
	if err := h.Sender.Send(c, job.To, subject, text, html); err != nil {
		if redelivered {
			return Drop, fmt.Errorf("send failed after redelivery: %w", err)
		}
		return Retry, fmt.Errorf("send failed: %w", err)
	}
	return Ack, nil
}

func render(job mailer.EmailJob) (subject, text, html string, err error) {
	subject, text, html = job.Subject, job.Text, job.HTML
	if job.Template != "" {
		name := strings.ToLower(job.Template)
		if !mailtpl.Known(name) {
			return "", "", "", fmt.Errorf("unknown template %q", job.Template)
		}
		s, t, hm, rerr := mailtpl.Render(name, job.Data)
		if rerr != nil {
			return "", "", "", fmt.Errorf("render %s failed: %w", name, rerr)
		}
		subject, text, html = s, t, hm
	}
	if subject == "" {
		subject = helpers.FallbackSubject(job.Template)
	}
	if text == "" && html == "" {
		return "", "", "", errors.New("email job has no body")
	}
	return subject, text, html, nil
}
