package application

import "github.com/oksasatya/go-task-tracker/internal/domain/apperror"

var (
	ErrInvalidCredentials = apperror.New(apperror.ErrUnauthenticated, "invalid credentials")
	ErrUserNotFound       = apperror.New(apperror.ErrNotFound, "user not found")
	ErrTaskNotFound       = apperror.New(apperror.ErrNotFound, "task not found")
	ErrNoUsers            = apperror.New(apperror.ErrNotFound, "no users found")
	ErrNoTasks            = apperror.New(apperror.ErrNotFound, "no tasks found")
	ErrEmailTaken         = apperror.New(apperror.ErrConflict, "email already registered")
	ErrTitleRequired      = apperror.New(apperror.ErrValidation, "task title is required")
)
