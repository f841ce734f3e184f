package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"choreboard/internal/display"
	"choreboard/internal/domain"
	"choreboard/internal/theme"
)

var setupKeys = struct {
	Up, Down, Confirm, Quit key.Binding
}{
	Up:      key.NewBinding(key.WithKeys("up", "k")),
	Down:    key.NewBinding(key.WithKeys("down", "j")),
	Confirm: key.NewBinding(key.WithKeys("enter")),
	Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
}

// SetupModel lets the user pick a colour theme while previewing it on a
// sample board.
type SetupModel struct {
	save      func(themeName string) error
	themes    []string
	selected  int
	current   *theme.Theme
	samples   []previewChore
	now       time.Time
	width     int
	height    int
	err       error
	quitting  bool
	confirmed bool
}

type previewChore struct {
	task   *domain.Task
	status domain.DueStatus
}

// NewSetupModel starts on the active theme, if any; save persists the choice.
func NewSetupModel(active string, save func(themeName string) error) SetupModel {
	themes := theme.ListThemes()

	selected := 0
	for i, name := range themes {
		if name == active {
			selected = i
			break
		}
	}

	now := time.Now()
	return SetupModel{
		save:     save,
		themes:   themes,
		selected: selected,
		current:  theme.Resolve(themes[selected]),
		samples:  previewBoard(now),
		now:      now,
		width:    100,
		height:   30,
	}
}

// one chore in every state, run through the real due date rules
func previewBoard(now time.Time) []previewChore {
	chores := []struct {
		name      string
		location  domain.Location
		frequency domain.Frequency
		important bool
		doneAgo   time.Duration
	}{
		{"Take out the bins", domain.LocationBackRoom, domain.FrequencyDaily, true, 54 * time.Hour},
		{"Wipe the bar counter", domain.LocationBar, domain.FrequencyEvery2Days, false, 43 * time.Hour},
		{"Mop the hall", domain.LocationHall, domain.FrequencyWeekly, false, 5 * 24 * time.Hour},
		{"Descale the dishwasher", domain.LocationDishStation, domain.FrequencyMonthly, false, 10 * 24 * time.Hour},
		{"Clean the office windows", domain.LocationOffice, domain.FrequencyWeekly, false, time.Hour},
	}

	board := make([]previewChore, 0, len(chores))
	for i, c := range chores {
		task := &domain.Task{
			ID:          int64(i + 1),
			Name:        c.name,
			Location:    c.location,
			Frequency:   c.frequency,
			IsImportant: c.important,
		}
		history := []*domain.Completion{{TaskID: task.ID, CompletedAt: now.Add(-c.doneAgo)}}
		board = append(board, previewChore{
			task:   task,
			status: domain.DeriveStatus(task, history, now),
		})
	}

	return board
}

func (m SetupModel) Init() tea.Cmd {
	return nil
}

func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, setupKeys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, setupKeys.Up):
			if m.selected > 0 {
				m.selected--
				m.current = theme.Resolve(m.themes[m.selected])
			}
			return m, nil

		case key.Matches(msg, setupKeys.Down):
			if m.selected < len(m.themes)-1 {
				m.selected++
				m.current = theme.Resolve(m.themes[m.selected])
			}
			return m, nil

		case key.Matches(msg, setupKeys.Confirm):
			if err := m.save(m.themes[m.selected]); err != nil {
				m.err = err
				return m, nil
			}
			m.confirmed = true
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m SetupModel) View() string {
	if m.quitting {
		if m.confirmed {
			return ""
		}
		return "Setup cancelled.\n"
	}

	if m.width < 60 || m.height < 10 {
		return "Terminal too small. Please resize and try again.\n"
	}

	styles := theme.NewStyles(m.current)

	listWidth := max(m.width/3, 30)
	previewWidth := max(m.width-listWidth-4, 30)

	panel := lipgloss.NewStyle().
		Height(m.height-4).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.current.BorderColor)).
		Padding(1)

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		panel.Width(listWidth).Render(m.renderThemeList(listWidth)),
		panel.Width(previewWidth).Render(m.renderPreview(styles, previewWidth)),
	)

	var b strings.Builder
	b.WriteString(styles.TUITitle.Render("ChoreBoard Initial Setup"))
	b.WriteString("\n")
	b.WriteString(styles.TUISubtitle.Render("Pick the colours for your board"))
	b.WriteString("\n\n")
	b.WriteString(body)
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(styles.Error.Render(fmt.Sprintf("✗ Could not save theme: %v", m.err)))
		b.WriteString("\n")
	}
	b.WriteString(styles.TUIHelp.Render("↑/k: up • ↓/j: down • enter: confirm • q: quit"))

	return b.String()
}

func (m SetupModel) heading(text string) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(m.current.Primary)).
		Render(text)
}

func (m SetupModel) renderThemeList(width int) string {
	var b strings.Builder

	b.WriteString(m.heading("Themes"))
	b.WriteString("\n\n")

	normal := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.current.TextSecondary)).
		Width(width - 4)
	highlight := normal.
		Foreground(lipgloss.Color(m.current.SelectedFg)).
		Background(lipgloss.Color(m.current.SelectedBg)).
		Bold(true)

	for i, name := range m.themes {
		if i == m.selected {
			b.WriteString(highlight.Render("▶ " + name))
		} else {
			b.WriteString(normal.Render("  " + name))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m SetupModel) renderPreview(styles *theme.Styles, width int) string {
	var b strings.Builder

	b.WriteString(m.heading("Preview"))
	b.WriteString("\n\n")

	sep := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.current.Separator)).
		Render(strings.Repeat("─", max(width-4, 1)))

	for i, chore := range m.samples {
		if i > 0 {
			b.WriteString(sep)
			b.WriteString("\n")
		}
		b.WriteString(m.renderChorePreview(styles, chore))
	}

	return b.String()
}

func (m SetupModel) renderChorePreview(styles *theme.Styles, chore previewChore) string {
	task, status := chore.task, chore.status

	name := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.current.TextPrimary)).
		Bold(true).
		Render(task.Name)
	if task.IsImportant {
		name = styles.ImportantText.Render("★ ") + name
	}

	due := fmt.Sprintf("  %s | %s",
		styles.GetRowStyle(status).Render(display.StatusBadge(status)),
		styles.GetUrgencyTextStyle(status.Urgency).Render(display.FormatNextDue(status.NextDue, m.now)),
	)

	where := "  " +
		lipgloss.NewStyle().Foreground(lipgloss.Color(m.current.Info)).Render("📍 "+string(task.Location)) +
		" " +
		lipgloss.NewStyle().Foreground(lipgloss.Color(m.current.TextMuted)).Render("↻ "+task.Frequency.Label())

	return name + "\n" + due + "\n" + where + "\n\n"
}
