package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tereohoa/api/internal/model"
)

func TestUserRepositoryEmailUnique(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.User{Email: "a@example.com", Role: model.RoleLearner}))

	err := repo.Create(ctx, &model.User{Email: "a@example.com", Role: model.RoleLearner})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestUserRepositorySetRole(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	ctx := context.Background()

	user := &model.User{Email: "a@example.com", Role: model.RoleLearner}
	require.NoError(t, repo.Create(ctx, user))

	promoted, err := repo.SetRole(ctx, user.ID, model.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, promoted.IsAdmin())

	_, err = repo.SetRole(ctx, 999, model.RoleAdmin)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRefreshTokenLifecycle(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	ctx := context.Background()

	user := &model.User{Email: "a@example.com", Role: model.RoleLearner}
	require.NoError(t, repo.Create(ctx, user))

	token := &model.RefreshToken{
		UserID:    user.ID,
		Token:     "tok-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, repo.CreateRefreshToken(ctx, token))

	active, err := repo.GetActiveRefreshToken(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, active.UserID)

	require.NoError(t, repo.RevokeRefreshToken(ctx, "tok-1"))

	_, err = repo.GetActiveRefreshToken(ctx, "tok-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExpiredRefreshTokenIsInactive(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	ctx := context.Background()

	user := &model.User{Email: "a@example.com", Role: model.RoleLearner}
	require.NoError(t, repo.Create(ctx, user))

	token := &model.RefreshToken{
		UserID:    user.ID,
		Token:     "tok-old",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, repo.CreateRefreshToken(ctx, token))

	_, err := repo.GetActiveRefreshToken(ctx, "tok-old")
	assert.ErrorIs(t, err, ErrNotFound)
}
