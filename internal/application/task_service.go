package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
	repo "github.com/oksasatya/go-task-tracker/internal/domain/repository"
	"github.com/oksasatya/go-task-tracker/pkg/helpers"
)

const searchLimit = 20

type TaskService struct {
	Tasks repo.TaskRepository
	// Index is optional; nil disables search.
	Index  TaskIndexer
	Logger *logrus.Logger
}

func NewTaskService(tasks repo.TaskRepository, index TaskIndexer, logger *logrus.Logger) *TaskService {
	return &TaskService{Tasks: tasks, Index: index, Logger: logger}
}

type CreateTaskInput struct {
	Title       string
	Description string
}

// UpdateTaskInput holds optional changes; nil fields are left alone.
type UpdateTaskInput struct {
	Title       *string
	Description *string
}

func (s *TaskService) List(ctx context.Context, identity string) ([]entity.Task, error) {
	tasks, err := s.Tasks.ListByOwner(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	if len(tasks) == 0 {
		return nil, ErrNoTasks
	}
	return tasks, nil
}

// Create stores a new task owned by identity, never by anything in the input.
func (s *TaskService) Create(ctx context.Context, identity string, in CreateTaskInput) (*entity.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	t, err := entity.NewTask(identity, title, strings.TrimSpace(in.Description))
	if err != nil {
		return nil, ErrUserNotFound
	}
	if err := s.Tasks.Create(ctx, t); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			// the account behind a still-valid token is gone
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("create task: %w", err)
	}
	s.reindex(ctx, t)
	return t, nil
}

// owned loads a task and applies the ownership rule. Missing and foreign
// tasks both come back as ErrTaskNotFound.
func (s *TaskService) owned(ctx context.Context, identity, id string) (*entity.Task, error) {
	t, err := s.Tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	if err := Authorize(identity, t.OwnerID); err != nil {
		return nil, ErrTaskNotFound
	}
	return t, nil
}

func (s *TaskService) Update(ctx context.Context, identity, id string, in UpdateTaskInput) (*entity.Task, error) {
	var title string
	if in.Title != nil {
		if title = strings.TrimSpace(*in.Title); title == "" {
			return nil, ErrTitleRequired
		}
	}
	t, err := s.owned(ctx, identity, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		t.Title = title
	}
	if in.Description != nil {
		t.Description = strings.TrimSpace(*in.Description)
	}
	if err := s.Tasks.Update(ctx, t); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("update task: %w", err)
	}
	s.reindex(ctx, t)
	return t, nil
}

// ToggleCompleted flips the completion flag of one of identity's tasks.
func (s *TaskService) ToggleCompleted(ctx context.Context, identity, id string) (*entity.Task, error) {
	if _, err := s.owned(ctx, identity, id); err != nil {
		return nil, err
	}
	t, err := s.Tasks.ToggleCompleted(ctx, id, identity)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("toggle task: %w", err)
	}
	s.reindex(ctx, t)
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, identity, id string) error {
	if _, err := s.owned(ctx, identity, id); err != nil {
		return err
	}
	if err := s.Tasks.Delete(ctx, id, identity); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("delete task: %w", err)
	}
	if s.Index != nil {
		if err := s.Index.Remove(ctx, id); err != nil {
			helpers.LogWarn(s.Logger, "remove task from index failed", err, logrus.Fields{"task_id": id})
		}
	}
	return nil
}

// Search looks q up in the index and reloads every hit from the store, so a
// stale or foreign index entry never reaches the caller.
func (s *TaskService) Search(ctx context.Context, identity, q string) ([]entity.Task, error) {
	out := []entity.Task{}
	q = strings.TrimSpace(q)
	if s.Index == nil || q == "" {
		return out, nil
	}
	ids, err := s.Index.Search(ctx, identity, q, searchLimit)
	if err != nil {
		return nil, fmt.Errorf("search tasks: %w", err)
	}
	for _, id := range ids {
		t, err := s.owned(ctx, identity, id)
		if errors.Is(err, ErrTaskNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, nil
}

func (s *TaskService) reindex(ctx context.Context, t *entity.Task) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, t); err != nil {
		helpers.LogWarn(s.Logger, "index task failed", err, logrus.Fields{"task_id": t.ID})
	}
}
