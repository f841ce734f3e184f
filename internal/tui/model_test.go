package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/WatchBeam/clock"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"choreboard/internal/domain"
	"choreboard/internal/service"
	"choreboard/internal/theme"
)

var boardNow = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

type completeCall struct {
	actor *domain.User
	id    int64
	notes string
}

// in-memory board
type fakeBoard struct {
	tasks     []*service.TaskView
	queries   []service.TaskQuery
	completed []completeCall
	toggled   []int64
	err       error
}

func (b *fakeBoard) ListTasks(ctx context.Context, q service.TaskQuery) ([]*service.TaskView, error) {
	b.queries = append(b.queries, q)
	return b.tasks, b.err
}

func (b *fakeBoard) GetTask(ctx context.Context, id int64) (*service.TaskDetail, error) {
	for _, view := range b.tasks {
		if view.ID == id {
			return &service.TaskDetail{TaskView: *view}, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (b *fakeBoard) CompleteTask(ctx context.Context, actor *domain.User, id int64, in service.CompletionInput) (*domain.Completion, error) {
	if b.err != nil {
		return nil, b.err
	}
	b.completed = append(b.completed, completeCall{actor: actor, id: id, notes: in.Notes})
	return &domain.Completion{TaskID: id, UserID: actor.ID, CompletedAt: boardNow, TaskName: "Mop the hall"}, nil
}

func (b *fakeBoard) ToggleImportant(ctx context.Context, actor *domain.User, id int64) (bool, error) {
	b.toggled = append(b.toggled, id)
	return true, nil
}

func sampleViews() []*service.TaskView {
	return []*service.TaskView{
		{
			Task:   &domain.Task{ID: 1, Name: "Take out the bins", Description: "All of them", Location: domain.LocationBackRoom, Frequency: domain.FrequencyDaily, IsImportant: true},
			Status: domain.DueStatus{NextDue: boardNow.Add(-2 * time.Hour), Urgency: domain.UrgencyOverdue},
		},
		{
			Task:           &domain.Task{ID: 2, Name: "Mop the hall", Description: "With the blue mop", Location: domain.LocationHall, Frequency: domain.FrequencyEvery2Days},
			Status:         domain.DueStatus{NextDue: boardNow.Add(47 * time.Hour), IsCompleted: true, Urgency: domain.UrgencyDueSoon},
			LastCompletion: &domain.Completion{ID: 7, TaskID: 2, CompletedAt: boardNow.Add(-time.Hour), UserName: "Anna"},
		},
	}
}

func newTestModel(t *testing.T, actor *domain.User) (Model, *fakeBoard) {
	t.Helper()

	board := &fakeBoard{tasks: sampleViews()}
	themeObj := theme.GetDefaultTheme()
	m := NewModel(board, actor, clock.NewMockClock(boardNow), service.TaskQuery{}, themeObj, theme.NewStyles(themeObj))

	// load the board synchronously
	msg := m.Init()()
	updated, _ := m.Update(msg)
	return updated.(Model), board
}

func press(t *testing.T, m Model, keys string) (Model, tea.Cmd) {
	t.Helper()

	var msg tea.KeyMsg
	switch keys {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)}
	}

	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func resident() *domain.User {
	return &domain.User{ID: 2, Name: "Anna", ApartmentNumber: "12"}
}

func TestModel_LoadsBoard(t *testing.T) {
	m, board := newTestModel(t, resident())

	assert.False(t, m.loading)
	assert.Len(t, m.tasks, 2)
	assert.Len(t, m.table.Rows(), 2)
	assert.Len(t, board.queries, 1)

	view := m.View()
	assert.Contains(t, view, "ChoreBoard")
	assert.Contains(t, view, "Total: 2 chore(s)")
	assert.Contains(t, view, "Signed in as Anna")
}

func TestModel_TaskToRow(t *testing.T) {
	m, _ := newTestModel(t, resident())
	views := sampleViews()

	overdue := m.taskToRow(views[0])
	assert.Contains(t, overdue[0], "Overdue")
	assert.Contains(t, overdue[1], "★ Take out the bins")
	assert.Equal(t, "back_room", overdue[2])
	assert.Equal(t, "Daily", overdue[3])
	assert.Contains(t, overdue[4], "2h late")
	assert.Equal(t, "never", overdue[5])

	done := m.taskToRow(views[1])
	assert.Contains(t, done[0], "✓ Done")
	assert.Equal(t, "1h ago by Anna", done[5])
}

func TestModel_CompleteSelected(t *testing.T) {
	actor := resident()
	m, board := newTestModel(t, actor)

	m, cmd := press(t, m, "c")
	assert.Nil(t, cmd)
	assert.Equal(t, completingMode, m.uiMode)
	assert.Contains(t, m.View(), "Mark 'Take out the bins' as done by Anna?")

	m.notesInput.SetValue("bins were full")
	m, cmd = press(t, m, "enter")
	require.NotNil(t, cmd)
	assert.Equal(t, normalMode, m.uiMode)

	msg := cmd()
	require.IsType(t, taskCompletedMsg{}, msg)
	require.Len(t, board.completed, 1)
	assert.Equal(t, int64(1), board.completed[0].id)
	assert.Same(t, actor, board.completed[0].actor)
	assert.Equal(t, "bins were full", board.completed[0].notes)

	updated, cmd := m.Update(msg)
	m = updated.(Model)
	assert.NotNil(t, cmd)
	assert.Equal(t, "✓ Mop the hall marked as done", m.message)
}

func TestModel_CompleteCancelled(t *testing.T) {
	m, board := newTestModel(t, resident())

	m, _ = press(t, m, "c")
	m, cmd := press(t, m, "esc")

	assert.Nil(t, cmd)
	assert.Equal(t, normalMode, m.uiMode)
	assert.Empty(t, board.completed)
}

func TestModel_ErrorsAreShown(t *testing.T) {
	m, _ := newTestModel(t, resident())

	updated, _ := m.Update(errMsg{errors.New("database is locked")})
	m = updated.(Model)

	assert.Contains(t, m.View(), "Error: database is locked")
}

func TestModel_ToggleImportant(t *testing.T) {
	t.Run("resident is refused", func(t *testing.T) {
		m, board := newTestModel(t, resident())

		m, cmd := press(t, m, "i")
		assert.Nil(t, cmd)
		assert.Error(t, m.err)
		assert.Empty(t, board.toggled)
	})

	t.Run("manager toggles the selected chore", func(t *testing.T) {
		m, board := newTestModel(t, &domain.User{ID: 1, Name: "Manager", IsManager: true})

		_, cmd := press(t, m, "i")
		require.NotNil(t, cmd)
		assert.Equal(t, importantToggledMsg{taskID: 1, important: true}, cmd())
		assert.Equal(t, []int64{1}, board.toggled)
	})
}

func TestModel_Filters(t *testing.T) {
	m, board := newTestModel(t, resident())

	m, cmd := press(t, m, "l")
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, domain.Locations[0], m.query.Location)
	assert.Equal(t, domain.Locations[0], board.queries[len(board.queries)-1].Location)

	// cycling past the last location goes back to all locations
	for range domain.Locations {
		m, _ = press(t, m, "l")
	}
	assert.Equal(t, domain.Location(""), m.query.Location)

	m, cmd = press(t, m, "h")
	cmd()
	require.NotNil(t, m.query.Completed)
	assert.False(t, *m.query.Completed)
	assert.True(t, m.hasActiveFilters())
	assert.Contains(t, m.filterSummary(), "Hiding done")

	m, _ = press(t, m, "F")
	assert.False(t, m.hasActiveFilters())
}

func TestModel_Search(t *testing.T) {
	m, board := newTestModel(t, resident())

	m, _ = press(t, m, "/")
	assert.Equal(t, searchingMode, m.uiMode)

	m.searchInput.SetValue("  mop ")
	m, cmd := press(t, m, "enter")
	require.NotNil(t, cmd)
	cmd()

	assert.Equal(t, normalMode, m.uiMode)
	assert.Equal(t, "mop", m.query.Search)
	assert.Equal(t, "mop", board.queries[len(board.queries)-1].Search)
}

func TestModel_DetailView(t *testing.T) {
	m, _ := newTestModel(t, resident())

	m, cmd := press(t, m, "enter")
	require.NotNil(t, cmd)
	updated, _ := m.Update(cmd())
	m = updated.(Model)

	assert.Equal(t, detailView, m.viewMode)
	require.NotNil(t, m.detail)
	assert.Equal(t, int64(1), m.detail.ID)

	view := m.View()
	assert.Contains(t, view, "Take out the bins")
	assert.Contains(t, view, "History (0)")

	// down moves to the next chore
	m, cmd = press(t, m, "j")
	require.NotNil(t, cmd)
	updated, _ = m.Update(cmd())
	m = updated.(Model)
	assert.Equal(t, int64(2), m.detail.ID)

	m, _ = press(t, m, "esc")
	assert.Equal(t, tableView, m.viewMode)
	assert.Nil(t, m.detail)
}

func TestWrapText(t *testing.T) {
	assert.Equal(t, "short", wrapText("short", 10))

	wrapped := wrapText("one two three four five", 9)
	for _, line := range strings.Split(wrapped, "\n") {
		assert.LessOrEqual(t, len(line), 9)
	}
	assert.Equal(t, "one two three four five", strings.ReplaceAll(wrapped, "\n", " "))
}

func TestSetupModel_SavesSelectedTheme(t *testing.T) {
	var saved string
	m := NewSetupModel("", func(name string) error {
		saved = name
		return nil
	})

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	updated, cmd := updated.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.NotNil(t, cmd)
	assert.Equal(t, theme.ListThemes()[1], saved)
	assert.True(t, updated.(SetupModel).confirmed)
}

func TestSetupModel_StartsOnActiveTheme(t *testing.T) {
	m := NewSetupModel("nord", func(string) error { return nil })
	assert.Equal(t, "nord", m.themes[m.selected])
	assert.Equal(t, "nord", m.current.Name)

	m = NewSetupModel("missing", func(string) error { return nil })
	assert.Equal(t, 0, m.selected)
}

func TestSetupModel_SaveErrorKeepsSelectorOpen(t *testing.T) {
	m := NewSetupModel("", func(string) error { return errors.New("read-only disk") })

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	setup := updated.(SetupModel)

	assert.Nil(t, cmd)
	assert.False(t, setup.confirmed)
	assert.Contains(t, setup.View(), "read-only disk")
}

func TestSetupModel_PreviewCoversEveryState(t *testing.T) {
	m := NewSetupModel("", func(string) error { return nil })

	var urgencies []domain.Urgency
	var done int
	for _, c := range m.samples {
		if c.status.IsCompleted {
			done++
			continue
		}
		urgencies = append(urgencies, c.status.Urgency)
	}
	assert.Equal(t, []domain.Urgency{
		domain.UrgencyOverdue,
		domain.UrgencyDueToday,
		domain.UrgencyDueSoon,
		domain.UrgencyFuture,
	}, urgencies)
	assert.Equal(t, 1, done)

	view := m.View()
	assert.Contains(t, view, "ChoreBoard Initial Setup")
	assert.Contains(t, view, "Overdue")
	assert.Contains(t, view, "✓ Done")
}
