package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
	"github.com/oksasatya/go-task-tracker/internal/infrastructure/memory"
	"github.com/oksasatya/go-task-tracker/pkg/helpers"
)

func newUserFixture(t *testing.T) (*UserService, *memory.Store, *entity.User, *entity.User) {
	t.Helper()
	store := memory.NewStore()
	hasher := helpers.NewPasswordHasher(bcrypt.MinCost)
	ctx := context.Background()

	mk := func(email string) *entity.User {
		digest, err := hasher.Hash("s3cretpass")
		require.NoError(t, err)
		u, err := entity.NewUser(email, "N", digest)
		require.NoError(t, err)
		require.NoError(t, store.Users().Create(ctx, u))
		return u
	}
	alice, bob := mk("alice@example.com"), mk("bob@example.com")
	return NewUserService(store.Users(), hasher, testLogger()), store, alice, bob
}

func TestUserService_ListEmpty(t *testing.T) {
	svc := NewUserService(memory.NewStore().Users(), helpers.NewPasswordHasher(bcrypt.MinCost), testLogger())
	_, err := svc.List(context.Background())
	assert.ErrorIs(t, err, ErrNoUsers)
}

func TestUserService_UpdateSelfRehashesPassword(t *testing.T) {
	svc, _, alice, _ := newUserFixture(t)
	ctx := context.Background()
	oldHash := alice.PasswordHash

	u, err := svc.Update(ctx, alice.ID, alice.ID, UpdateUserInput{Name: strPtr("Alice"), Password: strPtr("n3w-password")})
	require.NoError(t, err)
	assert.Equal(t, "Alice", u.Name)
	assert.NotEqual(t, oldHash, u.PasswordHash)
	assert.True(t, svc.Hasher.Verify("n3w-password", u.PasswordHash))
	assert.Equal(t, "alice@example.com", u.Email)
}

func TestUserService_UpdateOtherUserLooksMissing(t *testing.T) {
	svc, _, alice, bob := newUserFixture(t)
	ctx := context.Background()

	_, foreign := svc.Update(ctx, alice.ID, bob.ID, UpdateUserInput{Name: strPtr("x")})
	_, missing := svc.Update(ctx, alice.ID, "no-such-id", UpdateUserInput{Name: strPtr("x")})
	assert.Equal(t, missing, foreign)
	assert.ErrorIs(t, foreign, ErrUserNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, alice.ID, bob.ID), ErrUserNotFound)
}

func TestUserService_UpdateEmailConflict(t *testing.T) {
	svc, _, alice, bob := newUserFixture(t)

	_, err := svc.Update(context.Background(), alice.ID, alice.ID, UpdateUserInput{Email: strPtr(bob.Email)})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserService_DeleteSelfRemovesTasks(t *testing.T) {
	svc, store, alice, _ := newUserFixture(t)
	ctx := context.Background()
	task, err := entity.NewTask(alice.ID, "t", "")
	require.NoError(t, err)
	require.NoError(t, store.Tasks().Create(ctx, task))

	require.NoError(t, svc.Delete(ctx, alice.ID, alice.ID))

	tasks, err := store.Tasks().ListByOwner(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, tasks)
	assert.ErrorIs(t, svc.Delete(ctx, alice.ID, alice.ID), ErrUserNotFound)
}
