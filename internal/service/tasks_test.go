package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"choreboard/internal/domain"
)

func TestTaskService_CreateTask(t *testing.T) {
	env := setupTestEnv(t, domain.AnchorNow)
	ctx := context.Background()

	t.Run("manager creates task", func(t *testing.T) {
		view := env.createTask(t, "Wipe the bar", domain.LocationBar, domain.FrequencyDaily, true)

		assert.NotZero(t, view.ID)
		assert.True(t, view.IsImportant)
		assert.Equal(t, testStart, view.CreatedAt)
		assert.Nil(t, view.LastCompletion)
		assert.False(t, view.Status.IsCompleted)
		assert.Equal(t, testStart.Add(24*time.Hour), view.Status.NextDue)
		assert.Equal(t, domain.UrgencyDueSoon, view.Status.Urgency)
	})

	t.Run("resident is forbidden", func(t *testing.T) {
		_, err := env.tasks.CreateTask(ctx, env.resident, TaskInput{
			Name:        "Mop",
			Description: "Mop the floor",
			Location:    domain.LocationHall,
			Frequency:   domain.FrequencyDaily,
		})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("anonymous is unauthorized", func(t *testing.T) {
		_, err := env.tasks.CreateTask(ctx, nil, TaskInput{})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("invalid input", func(t *testing.T) {
		_, err := env.tasks.CreateTask(ctx, env.manager, TaskInput{
			Name:        "Mop",
			Description: "Mop the floor",
			Location:    domain.LocationHall,
		})
		assert.ErrorIs(t, err, domain.ErrValidation)

		_, err = env.tasks.CreateTask(ctx, env.manager, TaskInput{
			Name:        "   ",
			Description: "Mop the floor",
			Location:    domain.LocationHall,
			Frequency:   domain.FrequencyDaily,
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestTaskService_ListTasks(t *testing.T) {
	env := setupTestEnv(t, domain.AnchorNow)
	ctx := context.Background()

	office := env.createTask(t, "Tidy the office", domain.LocationOffice, domain.FrequencyWeekly, false)
	env.clock.AddTime(time.Minute)
	bar := env.createTask(t, "Wipe the bar", domain.LocationBar, domain.FrequencyDaily, true)
	env.clock.AddTime(time.Minute)

	completedAt := env.clock.Now()
	_, err := env.tasks.CompleteTask(ctx, env.resident, bar.ID, CompletionInput{Notes: "done"})
	require.NoError(t, err)

	t.Run("important first with derived status", func(t *testing.T) {
		views, err := env.tasks.ListTasks(ctx, TaskQuery{})
		require.NoError(t, err)
		require.Len(t, views, 2)

		assert.Equal(t, bar.ID, views[0].ID)
		assert.True(t, views[0].Status.IsCompleted)
		assert.Equal(t, completedAt.Add(24*time.Hour), views[0].Status.NextDue)
		assert.Equal(t, domain.UrgencyDueSoon, views[0].Status.Urgency)
		require.NotNil(t, views[0].LastCompletion)
		assert.Equal(t, "Anna", views[0].LastCompletion.UserName)

		assert.Equal(t, office.ID, views[1].ID)
		assert.False(t, views[1].Status.IsCompleted)
		assert.Equal(t, env.clock.Now().Add(7*24*time.Hour), views[1].Status.NextDue)
		assert.Equal(t, domain.UrgencyFuture, views[1].Status.Urgency)
	})

	t.Run("filter by completed flag", func(t *testing.T) {
		done := true
		views, err := env.tasks.ListTasks(ctx, TaskQuery{Completed: &done})
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, bar.ID, views[0].ID)

		notDone := false
		views, err = env.tasks.ListTasks(ctx, TaskQuery{Completed: &notDone})
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, office.ID, views[0].ID)
	})

	t.Run("filter by location and frequency", func(t *testing.T) {
		views, err := env.tasks.ListTasks(ctx, TaskQuery{Location: domain.LocationOffice})
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, office.ID, views[0].ID)

		views, err = env.tasks.ListTasks(ctx, TaskQuery{Frequency: domain.FrequencyMonthly})
		require.NoError(t, err)
		assert.Empty(t, views)
	})

	t.Run("completion window and overdue", func(t *testing.T) {
		env.clock.SetTime(completedAt.Add(25 * time.Hour))

		views, err := env.tasks.ListTasks(ctx, TaskQuery{Location: domain.LocationBar})
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.False(t, views[0].Status.IsCompleted)
		assert.Equal(t, domain.UrgencyOverdue, views[0].Status.Urgency)
	})
}

func TestTaskService_AnchorCreated(t *testing.T) {
	env := setupTestEnv(t, domain.AnchorCreated)
	ctx := context.Background()

	weekly := env.createTask(t, "Tidy the office", domain.LocationOffice, domain.FrequencyWeekly, false)
	assert.Equal(t, testStart.Add(7*24*time.Hour), weekly.Status.NextDue)

	env.clock.AddTime(8 * 24 * time.Hour)

	detail, err := env.tasks.GetTask(ctx, weekly.ID)
	require.NoError(t, err)
	assert.Equal(t, testStart.Add(7*24*time.Hour), detail.Status.NextDue)
	assert.Equal(t, domain.UrgencyOverdue, detail.Status.Urgency)
}

func TestTaskService_GetTask(t *testing.T) {
	env := setupTestEnv(t, domain.AnchorNow)
	ctx := context.Background()

	bar := env.createTask(t, "Wipe the bar", domain.LocationBar, domain.FrequencyDaily, false)

	_, err := env.tasks.CompleteTask(ctx, env.resident, bar.ID, CompletionInput{})
	require.NoError(t, err)
	env.clock.AddTime(2 * time.Hour)
	second, err := env.tasks.CompleteTask(ctx, env.manager, bar.ID, CompletionInput{Image: "/uploads/a.jpg"})
	require.NoError(t, err)

	detail, err := env.tasks.GetTask(ctx, bar.ID)
	require.NoError(t, err)

	require.Len(t, detail.History, 2)
	assert.Equal(t, second.ID, detail.History[0].ID)
	assert.Equal(t, "/uploads/a.jpg", detail.History[0].CompletionImage)
	require.NotNil(t, detail.LastCompletion)
	assert.Equal(t, second.ID, detail.LastCompletion.ID)
	assert.True(t, detail.Status.IsCompleted)
	assert.Equal(t, second.CompletedAt.Add(24*time.Hour), detail.Status.NextDue)

	_, err = env.tasks.GetTask(ctx, 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTaskService_UpdateTask(t *testing.T) {
	env := setupTestEnv(t, domain.AnchorNow)
	ctx := context.Background()

	task := env.createTask(t, "Clean the hall", domain.LocationHall, domain.FrequencyDaily, false)

	updated, err := env.tasks.UpdateTask(ctx, env.manager, task.ID, TaskInput{
		Name:        "Clean the hall floor",
		Description: "Vacuum and mop",
		Location:    domain.LocationHall,
		Frequency:   domain.FrequencyMonthly,
		IsImportant: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Clean the hall floor", updated.Name)
	assert.Equal(t, domain.FrequencyMonthly, updated.Frequency)
	assert.True(t, updated.IsImportant)
	assert.Equal(t, time.Date(2024, 4, 10, 9, 0, 0, 0, time.UTC), updated.Status.NextDue)

	_, err = env.tasks.UpdateTask(ctx, env.resident, task.ID, TaskInput{})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = env.tasks.UpdateTask(ctx, env.manager, 9999, TaskInput{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTaskService_DeleteTask(t *testing.T) {
	env := setupTestEnv(t, domain.AnchorNow)
	ctx := context.Background()

	task := env.createTask(t, "Clean the hall", domain.LocationHall, domain.FrequencyDaily, false)
	_, err := env.tasks.CompleteTask(ctx, env.resident, task.ID, CompletionInput{})
	require.NoError(t, err)

	assert.ErrorIs(t, env.tasks.DeleteTask(ctx, env.resident, task.ID), domain.ErrForbidden)
	require.NoError(t, env.tasks.DeleteTask(ctx, env.manager, task.ID))

	views, err := env.tasks.ListTasks(ctx, TaskQuery{})
	require.NoError(t, err)
	assert.Empty(t, views)

	_, err = env.tasks.GetTask(ctx, task.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = env.tasks.CompleteTask(ctx, env.resident, task.ID, CompletionInput{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// history is kept
	history, err := env.repos.Completions.ListByTask(ctx, task.ID, 0)
	require.NoError(t, err)
	assert.Len(t, history, 1)

	assert.ErrorIs(t, env.tasks.DeleteTask(ctx, env.manager, task.ID), domain.ErrNotFound)
}

func TestTaskService_ToggleImportant(t *testing.T) {
	env := setupTestEnv(t, domain.AnchorNow)
	ctx := context.Background()

	task := env.createTask(t, "Clean the hall", domain.LocationHall, domain.FrequencyDaily, false)

	important, err := env.tasks.ToggleImportant(ctx, env.manager, task.ID)
	require.NoError(t, err)
	assert.True(t, important)

	important, err = env.tasks.ToggleImportant(ctx, env.manager, task.ID)
	require.NoError(t, err)
	assert.False(t, important)

	_, err = env.tasks.ToggleImportant(ctx, env.resident, task.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestTaskService_CompleteTaskNotifiesManagers(t *testing.T) {
	env := setupTestEnv(t, domain.AnchorNow)
	ctx := context.Background()

	task := env.createTask(t, "Wipe the bar", domain.LocationBar, domain.FrequencyDaily, false)

	completion, err := env.tasks.CompleteTask(ctx, env.resident, task.ID, CompletionInput{Notes: "  spotless  "})
	require.NoError(t, err)
	assert.NotZero(t, completion.ID)
	assert.Equal(t, "spotless", completion.Notes)
	assert.Equal(t, testStart, completion.CompletedAt)
	assert.Equal(t, env.resident.ID, completion.UserID)

	managerInbox, err := env.notifications.List(ctx, env.manager)
	require.NoError(t, err)
	require.Len(t, managerInbox, 1)
	assert.Equal(t, domain.NotificationTaskCompleted, managerInbox[0].Type)
	assert.Contains(t, managerInbox[0].Message, "Anna (apt. 12)")
	require.NotNil(t, managerInbox[0].TaskID)
	assert.Equal(t, task.ID, *managerInbox[0].TaskID)

	residentInbox, err := env.notifications.List(ctx, env.resident)
	require.NoError(t, err)
	assert.Empty(t, residentInbox)

	_, err = env.tasks.CompleteTask(ctx, nil, task.ID, CompletionInput{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestTaskService_Summary(t *testing.T) {
	env := setupTestEnv(t, domain.AnchorNow)
	ctx := context.Background()

	bar := env.createTask(t, "Wipe the bar", domain.LocationBar, domain.FrequencyDaily, true)
	env.createTask(t, "Tidy the office", domain.LocationOffice, domain.FrequencyWeekly, false)
	env.createTask(t, "Clean the hall", domain.LocationHall, domain.FrequencyEvery2Days, false)

	_, err := env.tasks.CompleteTask(ctx, env.resident, bar.ID, CompletionInput{})
	require.NoError(t, err)

	summary, err := env.tasks.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 1, summary.Completed)
	assert.Equal(t, 1, summary.Important)
	assert.Equal(t, 2, summary.DueSoon)
	assert.Equal(t, 1, summary.Future)
}
