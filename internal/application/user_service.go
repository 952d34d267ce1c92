package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
	repo "github.com/oksasatya/go-task-tracker/internal/domain/repository"
)

type UserService struct {
	Users  repo.UserRepository
	Hasher PasswordHasher
	Logger *logrus.Logger
}

func NewUserService(users repo.UserRepository, hasher PasswordHasher, logger *logrus.Logger) *UserService {
	return &UserService{Users: users, Hasher: hasher, Logger: logger}
}

// UpdateUserInput holds optional changes; nil fields are left alone.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
}

func (s *UserService) List(ctx context.Context) ([]entity.User, error) {
	users, err := s.Users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if len(users) == 0 {
		return nil, ErrNoUsers
	}
	return users, nil
}

// Update changes the caller's own record. targetID must equal identity.
func (s *UserService) Update(ctx context.Context, identity, targetID string, in UpdateUserInput) (*entity.User, error) {
	if err := Authorize(identity, targetID); err != nil {
		return nil, ErrUserNotFound
	}
	u, err := s.Users.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if in.Name != nil {
		u.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		u.Email = strings.TrimSpace(*in.Email)
	}
	if in.Password != nil {
		digest, err := s.Hasher.Hash(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = digest
	}

	if err := s.Users.Update(ctx, u); err != nil {
		switch {
		case errors.Is(err, repo.ErrDuplicateEmail):
			return nil, ErrEmailTaken
		case errors.Is(err, repo.ErrNotFound):
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}

// Delete removes the caller's own account and, through the store, its tasks.
func (s *UserService) Delete(ctx context.Context, identity, targetID string) error {
	if err := Authorize(identity, targetID); err != nil {
		return ErrUserNotFound
	}
	if err := s.Users.Delete(ctx, targetID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
