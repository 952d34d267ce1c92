package postgres

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
	"github.com/oksasatya/go-task-tracker/internal/domain/repository"
)

// openTestPool connects to TEST_POSTGRES_DSN and migrates it, or skips.
func openTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	require.NoError(t, RunMigrations(dsn, "../../../db/migrations", logger))

	pool, err := NewPool(context.Background(), dsn, 10, 1, time.Hour)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func newTestUser(t *testing.T, repo *UserRepository) *entity.User {
	t.Helper()
	u, err := entity.NewUser(uuid.NewString()+"@example.com", "Test", "$2a$10$hash")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestUserRepository_Postgres(t *testing.T) {
	pool := openTestPool(t)
	repo := NewUserRepository(pool, 5*time.Second)
	ctx := context.Background()

	u := newTestUser(t, repo)
	assert.NotEmpty(t, u.ID)

	got, err := repo.GetByEmail(ctx, u.Email)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	dup, _ := entity.NewUser(u.Email, "Other", "$2a$10$hash")
	assert.ErrorIs(t, repo.Create(ctx, dup), repository.ErrDuplicateEmail)

	_, err = repo.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	u.Name = "Renamed"
	require.NoError(t, repo.Update(ctx, u))
	got, err = repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)

	require.NoError(t, repo.Delete(ctx, u.ID))
	assert.ErrorIs(t, repo.Delete(ctx, u.ID), repository.ErrNotFound)
}

func TestUserRepository_ConcurrentCreateSameEmail(t *testing.T) {
	pool := openTestPool(t)
	repo := NewUserRepository(pool, 5*time.Second)
	email := uuid.NewString() + "@example.com"

	const n = 8
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			u, _ := entity.NewUser(email, "Racer", "$2a$10$hash")
			err := repo.Create(context.Background(), u)
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
		}()
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
	}
	assert.Equal(t, 1, ok)
}

func TestTaskRepository_OwnerScoped(t *testing.T) {
	pool := openTestPool(t)
	users := NewUserRepository(pool, 5*time.Second)
	tasks := NewTaskRepository(pool, 5*time.Second)
	ctx := context.Background()

	alice := newTestUser(t, users)
	bob := newTestUser(t, users)

	task, err := entity.NewTask(alice.ID, "Finish project", "write docs")
	require.NoError(t, err)
	require.NoError(t, tasks.Create(ctx, task))

	list, err := tasks.ListByOwner(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, task.ID, list[0].ID)

	list, err = tasks.ListByOwner(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = tasks.ToggleCompleted(ctx, task.ID, bob.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, tasks.Delete(ctx, task.ID, bob.ID), repository.ErrNotFound)

	toggled, err := tasks.ToggleCompleted(ctx, task.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)
	toggled, err = tasks.ToggleCompleted(ctx, task.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Completed)

	require.NoError(t, users.Delete(ctx, alice.ID))
	_, err = tasks.GetByID(ctx, task.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	orphan, err := entity.NewTask(alice.ID, "after delete", "")
	require.NoError(t, err)
	assert.ErrorIs(t, tasks.Create(ctx, orphan), repository.ErrNotFound)

	require.NoError(t, users.Delete(ctx, bob.ID))
}
