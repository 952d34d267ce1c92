package repository

import (
	"context"

	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
)

// TaskRepository persists tasks. Mutations are scoped by owner so a row that
// belongs to someone else behaves exactly like a missing row (ErrNotFound).
type TaskRepository interface {
	Create(ctx context.Context, t *entity.Task) error
	GetByID(ctx context.Context, id string) (*entity.Task, error)
	ListByOwner(ctx context.Context, ownerID string) ([]entity.Task, error)
	Update(ctx context.Context, t *entity.Task) error
	ToggleCompleted(ctx context.Context, id, ownerID string) (*entity.Task, error)
	Delete(ctx context.Context, id, ownerID string) error
}
