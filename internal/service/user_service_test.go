package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planitapp/planit-api/internal/service/auth"
	"github.com/planitapp/planit-api/internal/store"
)

func newTestUserService() (UserService, *fakeUserStore) {
	users := newFakeUserStore()
	svc := NewUserService(users, auth.NewBcryptHasher(4), auth.NewBcryptVerifier(), discardLogger())
	return svc, users
}

func TestRegister(t *testing.T) {
	t.Parallel()

	svc, users := newTestUserService()
	ctx := context.Background()

	user, err := svc.Register(ctx, "ana@example.com", "a-long-enough-password")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.Empty(t, user.Password)
	assert.NotEmpty(t, user.HashedPassword)

	stored, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.HashedPassword, stored.HashedPassword)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	svc, _ := newTestUserService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "ana@example.com", "a-long-enough-password")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "ana@example.com", "another-long-password")
	assert.ErrorIs(t, err, store.ErrEmailExists)
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	svc, _ := newTestUserService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, "ana@example.com", "a-long-enough-password")
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, "ana@example.com", "a-long-enough-password")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	t.Parallel()

	svc, _ := newTestUserService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "ana@example.com", "a-long-enough-password")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "ana@example.com", "the-wrong-password!")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_UnknownEmail(t *testing.T) {
	t.Parallel()

	svc, _ := newTestUserService()

	_, err := svc.Authenticate(context.Background(), "nobody@example.com", "whatever-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestDeleteUser(t *testing.T) {
	t.Parallel()

	svc, users := newTestUserService()
	ctx := context.Background()

	user, err := svc.Register(ctx, "ana@example.com", "a-long-enough-password")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(ctx, user.ID))

	_, err = users.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	err = svc.DeleteUser(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}
