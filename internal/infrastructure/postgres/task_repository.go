package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
	"github.com/oksasatya/go-task-tracker/internal/domain/repository"
)

const taskColumns = `id, title, description, completed, user_id, created_at, updated_at`

type TaskRepository struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func NewTaskRepository(pool *pgxpool.Pool, timeout time.Duration) *TaskRepository {
	return &TaskRepository{pool: pool, timeout: timeout}
}

func scanTask(row pgx.Row) (*entity.Task, error) {
	t := &entity.Task{}
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	return t, nil
}

func (r *TaskRepository) Create(ctx context.Context, t *entity.Task) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (title, description, completed, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, t.Title, t.Description, t.Completed, t.OwnerID)

	return mapError(row.Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt))
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (*entity.Task, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	return scanTask(r.pool.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id))
}

func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID string) ([]entity.Task, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, `SELECT `+taskColumns+` FROM tasks WHERE user_id = $1 ORDER BY created_at, id`, ownerID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var out []entity.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// Update rewrites title and description. user_id is part of the predicate and
// never of the SET list.
func (r *TaskRepository) Update(ctx context.Context, t *entity.Task) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, `
		UPDATE tasks
		SET title = $1, description = $2, updated_at = now()
		WHERE id = $3 AND user_id = $4
		RETURNING completed, created_at, updated_at
	`, t.Title, t.Description, t.ID, t.OwnerID)

	return mapError(row.Scan(&t.Completed, &t.CreatedAt, &t.UpdatedAt))
}

// ToggleCompleted flips the flag in one statement so concurrent toggles never
// read a stale value.
func (r *TaskRepository) ToggleCompleted(ctx context.Context, id, ownerID string) (*entity.Task, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	return scanTask(r.pool.QueryRow(ctx, `
		UPDATE tasks
		SET completed = NOT completed, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING `+taskColumns, id, ownerID))
}

func (r *TaskRepository) Delete(ctx context.Context, id, ownerID string) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.TaskRepository = (*TaskRepository)(nil)
