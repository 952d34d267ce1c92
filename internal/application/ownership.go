package application

import "github.com/oksasatya/go-task-tracker/internal/domain/apperror"

// Authorize allows identity to act on a resource owned by owner. A denial is
// apperror.ErrNotFound so callers cannot tell it apart from a missing row.
func Authorize(identity, owner string) error {
	if identity == "" || identity != owner {
		return apperror.ErrNotFound
	}
	return nil
}
