package handlers

import (
	"time"

	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
)

// userView is the public shape of a user. The password hash never leaves the server.
type userView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type taskView struct {
	ID          string    `json:"id"`
	Task        string    `json:"task"`
	Description string    `json:"description"`
	Check       bool      `json:"check"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toUserView(u *entity.User) userView {
	return userView{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt}
}

func toUserViews(users []entity.User) []userView {
	out := make([]userView, 0, len(users))
	for i := range users {
		out = append(out, toUserView(&users[i]))
	}
	return out
}

func toTaskView(t *entity.Task) taskView {
	return taskView{
		ID:          t.ID,
		Task:        t.Title,
		Description: t.Description,
		Check:       t.Completed,
		UserID:      t.OwnerID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTaskViews(tasks []entity.Task) []taskView {
	out := make([]taskView, 0, len(tasks))
	for i := range tasks {
		out = append(out, toTaskView(&tasks[i]))
	}
	return out
}
