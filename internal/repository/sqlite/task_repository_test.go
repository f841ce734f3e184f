package sqlite

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"choreboard/internal/domain"
	"choreboard/internal/repository"
)

func setupTestDB(t *testing.T) (*DB, func()) {
	// create temp db file
	tmpFile, err := os.CreateTemp("", "choreboard_test_*.db")
	require.NoError(t, err)
	tmpFile.Close()

	dbPath := tmpFile.Name()

	// initialize db
	db, err := NewDB(Config{Path: dbPath})
	require.NoError(t, err)

	// return cleanup function
	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
		os.Remove(dbPath + "-wal")
		os.Remove(dbPath + "-shm")
	}

	return db, cleanup
}

func newTestTask(name string, location domain.Location, frequency domain.Frequency) *domain.Task {
	return domain.NewTask(name, name+" description", location, frequency)
}

func TestTaskRepository_Create(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewTaskRepository(db)
	ctx := context.Background()

	t.Run("create valid task", func(t *testing.T) {
		task := newTestTask("Wipe the bar", domain.LocationBar, domain.FrequencyDaily)
		task.IsImportant = true
		task.ImageURL = "/uploads/bar.jpg"

		err := repo.Create(ctx, task)
		require.NoError(t, err)
		assert.NotZero(t, task.ID)
		assert.True(t, task.IsActive)
	})

	t.Run("create task with invalid data", func(t *testing.T) {
		task := &domain.Task{Name: ""}

		err := repo.Create(ctx, task)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Contains(t, err.Error(), "validation failed")
	})
}

func TestTaskRepository_GetByID(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewTaskRepository(db)
	ctx := context.Background()

	original := newTestTask("Clean bathroom", domain.LocationBathroom, domain.FrequencyMonthly)
	original.ImageURL = "https://example.com/bath.jpg"
	require.NoError(t, repo.Create(ctx, original))

	t.Run("get existing task", func(t *testing.T) {
		retrieved, err := repo.GetByID(ctx, original.ID)
		require.NoError(t, err)

		assert.Equal(t, original.ID, retrieved.ID)
		assert.Equal(t, original.Name, retrieved.Name)
		assert.Equal(t, original.Description, retrieved.Description)
		assert.Equal(t, domain.LocationBathroom, retrieved.Location)
		assert.Equal(t, domain.FrequencyMonthly, retrieved.Frequency)
		assert.Equal(t, original.ImageURL, retrieved.ImageURL)
		assert.True(t, retrieved.IsActive)
		assert.WithinDuration(t, original.CreatedAt, retrieved.CreatedAt, time.Second)
	})

	t.Run("get non-existent task", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 99999)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestTaskRepository_List(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewTaskRepository(db)
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	fixtures := []*domain.Task{
		newTestTask("Wipe the bar", domain.LocationBar, domain.FrequencyDaily),
		newTestTask("Dish station", domain.LocationDishStation, domain.FrequencyEvery2Days),
		newTestTask("Back room tidy", domain.LocationBackRoom, domain.FrequencyBiWeekly),
		newTestTask("Office vacuum", domain.LocationOffice, domain.FrequencyWeekly),
	}
	fixtures[2].IsImportant = true
	for i, task := range fixtures {
		task.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, repo.Create(ctx, task))
	}
	require.NoError(t, repo.Deactivate(ctx, fixtures[3].ID))

	t.Run("important first then oldest", func(t *testing.T) {
		tasks, err := repo.List(ctx, repository.TaskFilter{})
		require.NoError(t, err)
		require.Len(t, tasks, 3)
		assert.Equal(t, "Back room tidy", tasks[0].Name)
		assert.Equal(t, "Wipe the bar", tasks[1].Name)
		assert.Equal(t, "Dish station", tasks[2].Name)
	})

	t.Run("inactive included on request", func(t *testing.T) {
		tasks, err := repo.List(ctx, repository.TaskFilter{IncludeInactive: true})
		require.NoError(t, err)
		assert.Len(t, tasks, 4)
	})

	t.Run("filter by location", func(t *testing.T) {
		tasks, err := repo.List(ctx, repository.TaskFilter{Location: domain.LocationBar})
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, "Wipe the bar", tasks[0].Name)
	})

	t.Run("filter by frequency", func(t *testing.T) {
		tasks, err := repo.List(ctx, repository.TaskFilter{Frequency: domain.FrequencyEvery2Days})
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, domain.FrequencyEvery2Days, tasks[0].Frequency)
	})

	t.Run("filter by important", func(t *testing.T) {
		important := true
		tasks, err := repo.List(ctx, repository.TaskFilter{IsImportant: &important})
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.True(t, tasks[0].IsImportant)
	})

	t.Run("search", func(t *testing.T) {
		tasks, err := repo.List(ctx, repository.TaskFilter{SearchQuery: "DISH"})
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, "Dish station", tasks[0].Name)
	})

	t.Run("pagination and count", func(t *testing.T) {
		tasks, err := repo.List(ctx, repository.TaskFilter{Limit: 2, Offset: 1})
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		assert.Equal(t, "Wipe the bar", tasks[0].Name)

		count, err := repo.Count(ctx, repository.TaskFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})
}

func TestTaskRepository_Update(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewTaskRepository(db)
	ctx := context.Background()

	task := newTestTask("Hall floor", domain.LocationHall, domain.FrequencyEvery2Days)
	require.NoError(t, repo.Create(ctx, task))

	task.Name = "Hall floor and chairs"
	task.Frequency = domain.FrequencyDaily
	task.ImageURL = ""
	require.NoError(t, repo.Update(ctx, task))

	updated, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hall floor and chairs", updated.Name)
	assert.Equal(t, domain.FrequencyDaily, updated.Frequency)

	t.Run("invalid update", func(t *testing.T) {
		task.Frequency = 0
		assert.ErrorIs(t, repo.Update(ctx, task), domain.ErrValidation)
	})

	t.Run("missing task", func(t *testing.T) {
		missing := newTestTask("Ghost", domain.LocationOther, domain.FrequencyDaily)
		missing.ID = 4242
		assert.ErrorIs(t, repo.Update(ctx, missing), domain.ErrNotFound)
	})
}

func TestTaskRepository_DeactivateAndToggle(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewTaskRepository(db)
	ctx := context.Background()

	task := newTestTask("Production line", domain.LocationProduction, domain.FrequencyWeekly)
	require.NoError(t, repo.Create(ctx, task))

	important, err := repo.ToggleImportant(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, important)

	important, err = repo.ToggleImportant(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, important)

	require.NoError(t, repo.Deactivate(ctx, task.ID))

	stored, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	assert.ErrorIs(t, repo.Deactivate(ctx, task.ID), domain.ErrNotFound)
	_, err = repo.ToggleImportant(ctx, task.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
