package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/go-task-tracker/internal/domain/repository"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	invalidTextRepr     = "22P02"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// mapError translates driver errors into repository errors. A malformed uuid
// can never match a row, so it reads as not found. A foreign key violation
// means the referenced user is gone.
func mapError(err error) error {
	var pgErr *pgconn.PgError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return repository.ErrNotFound
	case errors.As(err, &pgErr) && (pgErr.Code == invalidTextRepr || pgErr.Code == foreignKeyViolation):
		return repository.ErrNotFound
	case isUniqueViolation(err):
		return repository.ErrDuplicateEmail
	default:
		return err
	}
}
