package entity

import (
	"errors"
	"time"
)

var ErrMissingOwner = errors.New("task requires an owner")

// Task is a to-do item. OwnerID is fixed at creation and never rewritten.
type Task struct {
	ID          string
	Title       string
	Description string
	Completed   bool
	OwnerID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewTask(ownerID, title, description string) (*Task, error) {
	if ownerID == "" {
		return nil, ErrMissingOwner
	}
	return &Task{
		Title:       title,
		Description: description,
		OwnerID:     ownerID,
	}, nil
}

// OwnedBy reports whether identity is the task owner.
func (t *Task) OwnedBy(identity string) bool {
	return identity != "" && t.OwnerID == identity
}
