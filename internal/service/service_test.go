package service

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/WatchBeam/clock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"choreboard/internal/auth"
	"choreboard/internal/domain"
	"choreboard/internal/repository"
	"choreboard/internal/repository/sqlite"
)

var testStart = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

type testEnv struct {
	repos         repository.Repositories
	clock         *clock.MockClock
	tasks         *TaskService
	users         *UserService
	notifications *NotificationService

	manager  *domain.User
	resident *domain.User
}

// services over an empty database
func newTestEnv(t *testing.T, anchor domain.Anchor) *testEnv {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "choreboard_service_test_*.db")
	require.NoError(t, err)
	tmpFile.Close()
	dbPath := tmpFile.Name()

	db, err := sqlite.NewDB(sqlite.Config{Path: dbPath})
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
		os.Remove(dbPath)
		os.Remove(dbPath + "-wal")
		os.Remove(dbPath + "-shm")
	})

	mockClock := clock.NewMockClock(testStart)
	issuer, err := auth.NewTokenIssuer("test-secret", time.Hour, mockClock)
	require.NoError(t, err)

	repos := sqlite.NewRepositories(db)
	logger := zerolog.Nop()

	env := &testEnv{
		repos:         repos,
		clock:         mockClock,
		tasks:         NewTaskService(repos, domain.Evaluator{Anchor: anchor}, mockClock, logger),
		users:         NewUserService(repos, issuer, bcrypt.MinCost, mockClock, logger),
		notifications: NewNotificationService(repos),
	}

	return env
}

// services with one manager and one resident
func setupTestEnv(t *testing.T, anchor domain.Anchor) *testEnv {
	t.Helper()

	env := newTestEnv(t, anchor)
	ctx := context.Background()

	var err error
	env.manager, err = env.users.CreateUser(ctx, "Manager", "M1", "manager-pass", true)
	require.NoError(t, err)
	env.resident, err = env.users.CreateUser(ctx, "Anna", "12", "anna-pass", false)
	require.NoError(t, err)

	return env
}

func (e *testEnv) createTask(t *testing.T, name string, location domain.Location, frequency domain.Frequency, important bool) *TaskView {
	t.Helper()

	view, err := e.tasks.CreateTask(context.Background(), e.manager, TaskInput{
		Name:        name,
		Description: name + " thoroughly",
		Location:    location,
		Frequency:   frequency,
		IsImportant: important,
	})
	require.NoError(t, err)
	return view
}
