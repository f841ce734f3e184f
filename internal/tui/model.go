package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/WatchBeam/clock"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"choreboard/internal/display"
	"choreboard/internal/domain"
	"choreboard/internal/service"
	"choreboard/internal/theme"
)

type viewMode int

const (
	tableView viewMode = iota
	detailView
)

type uiMode int

const (
	normalMode uiMode = iota
	searchingMode
	completingMode
)

type Model struct {
	board Board
	actor *domain.User
	clock clock.Clock

	tasks  []*service.TaskView
	detail *service.TaskDetail
	query  service.TaskQuery

	// index into domain.Locations, -1 for every location
	locationIdx int

	table       table.Model
	searchInput textinput.Model
	notesInput  textinput.Model
	keys        keyMap

	viewMode viewMode
	uiMode   uiMode

	err      error
	width    int
	height   int
	showHelp bool
	loading  bool
	message  string

	theme  *theme.Theme
	styles *theme.Styles

	ctx context.Context
}

// NewModel builds the board for actor; completions are recorded in their name.
func NewModel(board Board, actor *domain.User, c clock.Clock, initial service.TaskQuery, themeObj *theme.Theme, styles *theme.Styles) Model {
	if c == nil {
		c = clock.C
	}

	columns := []table.Column{
		{Title: "Status", Width: 14},
		{Title: "Chore", Width: 32},
		{Title: "Location", Width: 14},
		{Title: "Frequency", Width: 14},
		{Title: "Next due", Width: 12},
		{Title: "Last done", Width: 22},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows([]table.Row{}),
		table.WithFocused(true),
		table.WithHeight(20),
	)
	t.SetStyles(tableStyles(themeObj))

	si := textinput.New()
	si.Placeholder = "Search chores..."
	si.CharLimit = 100
	si.Width = 50

	ni := textinput.New()
	ni.Placeholder = "Notes (optional)"
	ni.CharLimit = 1000
	ni.Width = 60

	locationIdx := -1
	for i, l := range domain.Locations {
		if l == initial.Location {
			locationIdx = i
		}
	}

	return Model{
		board:       board,
		actor:       actor,
		clock:       c,
		tasks:       []*service.TaskView{},
		query:       initial,
		locationIdx: locationIdx,
		table:       t,
		searchInput: si,
		notesInput:  ni,
		keys:        defaultKeyMap(),
		viewMode:    tableView,
		uiMode:      normalMode,
		loading:     true,
		theme:       themeObj,
		styles:      styles,
		ctx:         context.Background(),
	}
}

func (m Model) Init() tea.Cmd {
	return fetchTasksCmd(m.ctx, m.board, m.query)
}

func (m *Model) taskToRow(view *service.TaskView) table.Row {
	now := m.clock.Now()
	rowStyle := m.styles.GetRowStyle(view.Status)

	name := view.Name
	if view.IsImportant {
		name = "★ " + name
	}

	return table.Row{
		rowStyle.Render(display.StatusBadge(view.Status)),
		rowStyle.Render(display.Truncate(name, 32)),
		string(view.Location),
		view.Frequency.Label(),
		rowStyle.Render(display.FormatNextDue(view.Status.NextDue, now)),
		display.Truncate(display.FormatLastCompletion(view.LastCompletion, now), 22),
	}
}

func (m *Model) refreshRows() {
	rows := make([]table.Row, 0, len(m.tasks))
	for _, view := range m.tasks {
		rows = append(rows, m.taskToRow(view))
	}
	m.table.SetRows(rows)

	if cursor := m.table.Cursor(); cursor >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

// the chore under the cursor, nil on an empty board
func (m *Model) selectedTask() *service.TaskView {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.tasks) {
		return nil
	}
	return m.tasks[cursor]
}

// the chore the current view acts on
func (m *Model) currentTaskID() (int64, bool) {
	if m.viewMode == detailView && m.detail != nil {
		return m.detail.ID, true
	}
	if task := m.selectedTask(); task != nil {
		return task.ID, true
	}
	return 0, false
}

func (m *Model) cycleLocation() {
	m.locationIdx++
	if m.locationIdx >= len(domain.Locations) {
		m.locationIdx = -1
	}

	if m.locationIdx < 0 {
		m.query.Location = ""
	} else {
		m.query.Location = domain.Locations[m.locationIdx]
	}
}

func (m *Model) toggleHideCompleted() {
	if m.query.Completed == nil {
		hide := false
		m.query.Completed = &hide
		return
	}
	m.query.Completed = nil
}

func (m *Model) clearFilters() {
	m.query = service.TaskQuery{}
	m.locationIdx = -1
	m.searchInput.SetValue("")
}

func (m *Model) hasActiveFilters() bool {
	return m.query.Location != "" ||
		m.query.Frequency != 0 ||
		m.query.Completed != nil ||
		m.query.Search != ""
}

func (m *Model) filterSummary() string {
	var filters []string

	if m.query.Location != "" {
		filters = append(filters, fmt.Sprintf("Location: %s", m.query.Location))
	}
	if m.query.Frequency != 0 {
		filters = append(filters, fmt.Sprintf("Frequency: %s", m.query.Frequency.Label()))
	}
	if m.query.Completed != nil {
		if *m.query.Completed {
			filters = append(filters, "Done only")
		} else {
			filters = append(filters, "Hiding done")
		}
	}
	if m.query.Search != "" {
		filters = append(filters, fmt.Sprintf("Search: %s", m.query.Search))
	}

	return strings.Join(filters, " | ")
}

func wrapText(text string, width int) string {
	if len(text) <= width {
		return text
	}

	var wrapped []string
	words := strings.Fields(text)
	currentLine := ""

	for _, word := range words {
		if len(currentLine)+len(word)+1 > width {
			if currentLine != "" {
				wrapped = append(wrapped, currentLine)
			}
			currentLine = word
		} else {
			if currentLine == "" {
				currentLine = word
			} else {
				currentLine += " " + word
			}
		}
	}

	if currentLine != "" {
		wrapped = append(wrapped, currentLine)
	}

	return strings.Join(wrapped, "\n")
}
