package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"choreboard/internal/domain"
	"choreboard/internal/service"
)

// the slice of the task service the board needs
type Board interface {
	ListTasks(ctx context.Context, q service.TaskQuery) ([]*service.TaskView, error)
	GetTask(ctx context.Context, id int64) (*service.TaskDetail, error)
	CompleteTask(ctx context.Context, actor *domain.User, id int64, in service.CompletionInput) (*domain.Completion, error)
	ToggleImportant(ctx context.Context, actor *domain.User, id int64) (bool, error)
}

// Message types for async operations

// tasksLoadedMsg is sent when the board has been evaluated
type tasksLoadedMsg struct {
	tasks []*service.TaskView
}

// taskDetailMsg carries a chore with its full history
type taskDetailMsg struct {
	detail *service.TaskDetail
}

// taskCompletedMsg is sent when a completion has been recorded
type taskCompletedMsg struct {
	completion *domain.Completion
}

type importantToggledMsg struct {
	taskID    int64
	important bool
}

// errMsg wraps errors from async operations
type errMsg struct {
	err error
}

func (e errMsg) Error() string {
	return e.err.Error()
}

// Bubble Tea commands for async operations

func fetchTasksCmd(ctx context.Context, board Board, q service.TaskQuery) tea.Cmd {
	return func() tea.Msg {
		tasks, err := board.ListTasks(ctx, q)
		if err != nil {
			return errMsg{err}
		}
		return tasksLoadedMsg{tasks: tasks}
	}
}

func fetchDetailCmd(ctx context.Context, board Board, id int64) tea.Cmd {
	return func() tea.Msg {
		detail, err := board.GetTask(ctx, id)
		if err != nil {
			return errMsg{err}
		}
		return taskDetailMsg{detail: detail}
	}
}

func completeTaskCmd(ctx context.Context, board Board, actor *domain.User, id int64, notes string) tea.Cmd {
	return func() tea.Msg {
		completion, err := board.CompleteTask(ctx, actor, id, service.CompletionInput{Notes: notes})
		if err != nil {
			return errMsg{err}
		}
		return taskCompletedMsg{completion: completion}
	}
}

func toggleImportantCmd(ctx context.Context, board Board, actor *domain.User, id int64) tea.Cmd {
	return func() tea.Msg {
		important, err := board.ToggleImportant(ctx, actor, id)
		if err != nil {
			return errMsg{err}
		}
		return importantToggledMsg{taskID: id, important: important}
	}
}

// refreshCmd reloads the board with the current filters
func (m *Model) refreshCmd() tea.Cmd {
	return fetchTasksCmd(m.ctx, m.board, m.query)
}
