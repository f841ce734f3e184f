package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"choreboard/internal/domain"
)

func TestUserService_Register(t *testing.T) {
	env := setupTestEnv(t, domain.AnchorNow)
	ctx := context.Background()

	t.Run("creates resident with token", func(t *testing.T) {
		session, err := env.users.Register(ctx, " Piotr ", "7", "secret1")
		require.NoError(t, err)
		assert.NotEmpty(t, session.Token)
		assert.Equal(t, "Piotr", session.User.Name)
		assert.False(t, session.User.IsManager)

		user, err := env.users.Authenticate(ctx, session.Token)
		require.NoError(t, err)
		assert.Equal(t, session.User.ID, user.ID)
	})

	t.Run("duplicate apartment", func(t *testing.T) {
		_, err := env.users.Register(ctx, "Someone", "12", "secret1")
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("short password", func(t *testing.T) {
		_, err := env.users.Register(ctx, "Ola", "9", "123")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := env.users.Register(ctx, "", "10", "secret1")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestUserService_Login(t *testing.T) {
	env := setupTestEnv(t, domain.AnchorNow)
	ctx := context.Background()

	session, err := env.users.Login(ctx, "12", "anna-pass")
	require.NoError(t, err)
	assert.Equal(t, env.resident.ID, session.User.ID)

	_, err = env.users.Login(ctx, "12", "wrong-pass")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = env.users.Login(ctx, "404", "anna-pass")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestUserService_Authenticate(t *testing.T) {
	env := setupTestEnv(t, domain.AnchorNow)
	ctx := context.Background()

	session, err := env.users.Login(ctx, "M1", "manager-pass")
	require.NoError(t, err)

	user, err := env.users.Authenticate(ctx, session.Token)
	require.NoError(t, err)
	assert.True(t, user.IsManager)

	_, err = env.users.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	env.clock.AddTime(2 * time.Hour)
	_, err = env.users.Authenticate(ctx, session.Token)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUserService_VerifyManager(t *testing.T) {
	env := setupTestEnv(t, domain.AnchorNow)
	ctx := context.Background()

	assert.NoError(t, env.users.VerifyManager(ctx, env.manager, "manager-pass"))
	assert.ErrorIs(t, env.users.VerifyManager(ctx, env.manager, "nope"), domain.ErrUnauthorized)
	assert.ErrorIs(t, env.users.VerifyManager(ctx, env.resident, "anna-pass"), domain.ErrForbidden)
}

func TestUserService_ListUsersAndStats(t *testing.T) {
	env := setupTestEnv(t, domain.AnchorNow)
	ctx := context.Background()

	task := env.createTask(t, "Wipe the bar", domain.LocationBar, domain.FrequencyDaily, false)
	for i := 0; i < 12; i++ {
		_, err := env.tasks.CompleteTask(ctx, env.resident, task.ID, CompletionInput{})
		require.NoError(t, err)
		env.clock.AddTime(time.Hour)
	}

	_, err := env.users.ListUsers(ctx, env.resident)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	users, err := env.users.ListUsers(ctx, env.manager)
	require.NoError(t, err)
	require.Len(t, users, 2)

	var anna *domain.User
	for _, u := range users {
		if u.ID == env.resident.ID {
			anna = u
		}
	}
	require.NotNil(t, anna)
	assert.Equal(t, 12, anna.CompletionCount)

	stats, err := env.users.Stats(ctx, env.resident)
	require.NoError(t, err)
	assert.Equal(t, int64(12), stats.TotalCompletions)
	assert.Len(t, stats.RecentCompletions, 10)
	assert.Equal(t, "Wipe the bar", stats.RecentCompletions[0].TaskName)
	assert.Equal(t, env.clock.Now(), stats.CalculatedAt)
}

func TestUserService_Me(t *testing.T) {
	env := setupTestEnv(t, domain.AnchorNow)
	ctx := context.Background()

	me, err := env.users.Me(ctx, env.resident)
	require.NoError(t, err)
	assert.Equal(t, "Anna", me.Name)
	assert.Equal(t, "12", me.ApartmentNumber)

	_, err = env.users.Me(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
