package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// leave room for title, status bar and help
		if h := msg.Height - 10; h > 5 {
			m.table.SetHeight(h)
		}
		return m, nil

	case tasksLoadedMsg:
		m.loading = false
		m.tasks = msg.tasks
		m.refreshRows()
		return m, nil

	case taskDetailMsg:
		m.detail = msg.detail
		m.viewMode = detailView
		return m, nil

	case taskCompletedMsg:
		m.message = fmt.Sprintf("✓ %s marked as done", msg.completion.TaskName)
		m.err = nil
		cmds := []tea.Cmd{m.refreshCmd()}
		if m.viewMode == detailView && m.detail != nil {
			cmds = append(cmds, fetchDetailCmd(m.ctx, m.board, m.detail.ID))
		}
		return m, tea.Batch(cmds...)

	case importantToggledMsg:
		if msg.important {
			m.message = "★ Marked as important"
		} else {
			m.message = "Important flag removed"
		}
		m.err = nil
		return m, m.refreshCmd()

	case errMsg:
		m.loading = false
		m.err = msg.err
		m.message = ""
		return m, nil
	}

	switch m.uiMode {
	case searchingMode:
		return m.updateSearchMode(msg)
	case completingMode:
		return m.updateCompletingMode(msg)
	}

	return m.updateNormalMode(msg)
}

func (m Model) updateNormalMode(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(keyMsg, m.keys.Refresh):
		m.message = ""
		m.err = nil
		return m, m.refreshCmd()

	case key.Matches(keyMsg, m.keys.MarkComplete):
		if _, ok := m.currentTaskID(); !ok {
			return m, nil
		}
		m.uiMode = completingMode
		m.notesInput.SetValue("")
		m.notesInput.Focus()
		return m, nil

	case key.Matches(keyMsg, m.keys.ToggleImportant):
		id, ok := m.currentTaskID()
		if !ok {
			return m, nil
		}
		if !m.actor.IsManager {
			m.err = errors.New("only managers can change the important flag")
			return m, nil
		}
		return m, toggleImportantCmd(m.ctx, m.board, m.actor, id)
	}

	if m.viewMode == detailView {
		return m.updateDetailView(keyMsg)
	}
	return m.updateTableView(keyMsg)
}

func (m Model) updateTableView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Enter):
		if task := m.selectedTask(); task != nil {
			return m, fetchDetailCmd(m.ctx, m.board, task.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.uiMode = searchingMode
		m.searchInput.SetValue(m.query.Search)
		m.searchInput.Focus()
		return m, nil

	case key.Matches(msg, m.keys.CycleLocation):
		m.cycleLocation()
		return m, m.refreshCmd()

	case key.Matches(msg, m.keys.HideCompleted):
		m.toggleHideCompleted()
		return m, m.refreshCmd()

	case key.Matches(msg, m.keys.ClearFilters):
		m.clearFilters()
		return m, m.refreshCmd()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) updateDetailView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.viewMode = tableView
		m.detail = nil
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.table.Cursor() > 0 {
			m.table.MoveUp(1)
			return m, fetchDetailCmd(m.ctx, m.board, m.selectedTask().ID)
		}

	case key.Matches(msg, m.keys.Down):
		if m.table.Cursor() < len(m.tasks)-1 {
			m.table.MoveDown(1)
			return m, fetchDetailCmd(m.ctx, m.board, m.selectedTask().ID)
		}
	}

	return m, nil
}

func (m Model) updateSearchMode(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			m.uiMode = normalMode
			m.searchInput.Blur()
			m.query.Search = strings.TrimSpace(m.searchInput.Value())
			return m, m.refreshCmd()

		case "esc":
			m.uiMode = normalMode
			m.searchInput.Blur()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m Model) updateCompletingMode(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			m.uiMode = normalMode
			m.notesInput.Blur()
			id, ok := m.currentTaskID()
			if !ok {
				return m, nil
			}
			return m, completeTaskCmd(m.ctx, m.board, m.actor, id, m.notesInput.Value())

		case "esc":
			m.uiMode = normalMode
			m.notesInput.Blur()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.notesInput, cmd = m.notesInput.Update(msg)
	return m, cmd
}

// name of the chore the completion prompt is about
func (m *Model) completingTaskName() string {
	if m.viewMode == detailView && m.detail != nil {
		return m.detail.Name
	}
	if task := m.selectedTask(); task != nil {
		return task.Name
	}
	return ""
}

