package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"choreboard/internal/display"
	"choreboard/internal/domain"
)

// renders the UI
func (m Model) View() string {
	if m.loading {
		return m.styles.TUITitle.Render("Loading...") + "\n"
	}

	var b strings.Builder

	title := m.styles.TUITitle.Render("  ChoreBoard  ")
	b.WriteString(title)
	b.WriteString("\n")

	// completion prompt takes precedence
	if m.uiMode == completingMode {
		b.WriteString("\n")
		b.WriteString(m.renderCompletePrompt())
		b.WriteString("\n")
		return b.String()
	}

	if m.uiMode == searchingMode {
		b.WriteString(m.renderSearchMode())
		b.WriteString("\n")
		b.WriteString(m.renderStatusBar())
		b.WriteString("\n")
		b.WriteString(m.renderHelp())
		return b.String()
	}

	switch m.viewMode {
	case tableView:
		b.WriteString(m.renderTableView())
	case detailView:
		b.WriteString(m.renderDetailView())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

func (m Model) renderMessages() string {
	var b strings.Builder
	if m.message != "" {
		b.WriteString(m.styles.Success.Render(m.message))
		b.WriteString("\n\n")
	}
	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	}
	return b.String()
}

func (m Model) renderTableView() string {
	var b strings.Builder

	if m.hasActiveFilters() {
		b.WriteString(m.styles.Info.Render("Active filters: " + m.filterSummary()))
		b.WriteString("\n")
	}

	b.WriteString(m.renderMessages())

	if len(m.tasks) == 0 {
		if m.hasActiveFilters() {
			b.WriteString(m.styles.Info.Render("No chores found matching the filters."))
		} else {
			b.WriteString(m.styles.Info.Render("No chores on the board."))
		}
		b.WriteString("\n")
	} else {
		b.WriteString(m.table.View())
	}

	return b.String()
}

func (m Model) renderDetailView() string {
	if m.detail == nil {
		return m.styles.Info.Render("No chore selected.")
	}

	task := m.detail
	now := m.clock.Now()

	var b strings.Builder
	b.WriteString(m.renderMessages())

	content := []string{}
	content = append(content, m.renderDetailRow("ID:", fmt.Sprintf("#%d", task.ID)))
	content = append(content, m.renderDetailRow("Chore:", task.Name))
	content = append(content, m.renderDetailRow("Description:", wrapText(task.Description, 60)))
	content = append(content, m.renderDetailRow("Location:", string(task.Location)))
	content = append(content, m.renderDetailRow("Frequency:", task.Frequency.Label()))

	if task.IsImportant {
		content = append(content, m.styles.DetailLabel.Render("Important:")+" "+m.styles.ImportantText.Render("★ yes"))
	}

	statusStyle := m.styles.GetRowStyle(task.Status)
	content = append(content, m.styles.DetailLabel.Render("Status:")+" "+statusStyle.Render(display.StatusBadge(task.Status)))
	content = append(content, m.renderDetailRow("Next due:",
		fmt.Sprintf("%s (%s)", task.Status.NextDue.Local().Format("2006-01-02 15:04"), display.FormatNextDue(task.Status.NextDue, now))))
	content = append(content, m.renderDetailRow("Last done:", display.FormatLastCompletion(task.LastCompletion, now)))

	if task.ImageURL != "" {
		content = append(content, m.renderDetailRow("Image:", task.ImageURL))
	}

	content = append(content, "")
	content = append(content, m.styles.TUISubtitle.Render(fmt.Sprintf("History (%d)", len(task.History))))
	if len(task.History) == 0 {
		content = append(content, m.styles.DetailValue.Render("  never done"))
	}
	for _, c := range task.History {
		line := fmt.Sprintf("  %s  %s", c.CompletedAt.Local().Format("2006-01-02 15:04"), c.UserName)
		if c.UserApartment != "" {
			line += fmt.Sprintf(" (apt. %s)", c.UserApartment)
		}
		if c.Notes != "" {
			line += " - " + display.Truncate(c.Notes, 40)
		}
		content = append(content, m.styles.DetailValue.Render(line))
	}

	card := m.styles.DetailContainer.Render(strings.Join(content, "\n"))
	b.WriteString(card)

	return b.String()
}

func (m Model) renderSearchMode() string {
	var b strings.Builder

	label := m.styles.TUISubtitle.Render("Search Chores:")
	b.WriteString(label)
	b.WriteString("\n")
	b.WriteString(m.searchInput.View())
	b.WriteString("\n\n")

	hint := m.styles.TUIHelp.Render("Matches chore names and descriptions")
	b.WriteString(hint)

	return b.String()
}

func (m Model) renderCompletePrompt() string {
	message := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Success)).
		Bold(true).
		Render(fmt.Sprintf("Mark '%s' as done by %s?", m.completingTaskName(), m.actor.Name))

	prompt := m.styles.TUISubtitle.Render("enter: confirm • esc: cancel")

	content := lipgloss.JoinVertical(lipgloss.Left, message, "", m.notesInput.View(), "", prompt)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Success)).
		Padding(1, 2).
		Render(content)
}

func (m Model) renderStatusBar() string {
	var items []string

	var overdue, done int
	for _, view := range m.tasks {
		if view.Status.IsCompleted {
			done++
		} else if view.Status.Urgency == domain.UrgencyOverdue {
			overdue++
		}
	}

	items = append(items, fmt.Sprintf("Total: %d chore(s)", len(m.tasks)))
	if overdue > 0 {
		items = append(items, m.styles.OverdueText.Render(fmt.Sprintf("%d overdue", overdue)))
	}
	items = append(items, fmt.Sprintf("%d done", done))
	items = append(items, fmt.Sprintf("Signed in as %s", m.actor.Name))

	return m.styles.TUISubtitle.Render(strings.Join(items, " • "))
}

// help text
func (m Model) renderHelp() string {
	if m.showHelp {
		return m.renderFullHelp()
	}

	return m.renderQuickHelp()
}

func (m Model) renderFullHelp() string {
	var help []string

	if m.viewMode == tableView {
		help = []string{
			"Board:",
			"  ↑/k         Move up",
			"  ↓/j         Move down",
			"  Enter       View details and history",
			"  /           Search",
			"  l           Cycle location",
			"  h           Hide done chores",
			"  F           Clear filters",
			"  r           Refresh",
		}
	} else {
		help = []string{
			"Detail View:",
			"  ↑/k         Previous chore",
			"  ↓/j         Next chore",
			"  Esc         Back to board",
		}
	}

	help = append(help,
		"",
		"Actions:",
		"  c           Mark done",
		"  i           Toggle important (managers)",
		"",
		"General:",
		"  q/Ctrl+C    Quit",
		"  ?           Toggle help",
	)

	return m.styles.TUIHelp.Render(strings.Join(help, "\n"))
}

func (m Model) renderQuickHelp() string {
	var hints []string

	if m.uiMode == searchingMode {
		hints = []string{"Type: search", "Enter: apply", "Esc: cancel"}
	} else if m.viewMode == tableView {
		hints = []string{
			"↑/↓: navigate",
			"enter: details",
			"c: done",
			"/: search",
			"l: location",
			"h: hide done",
			"?: help",
		}
	} else {
		hints = []string{
			"↑/↓: prev/next",
			"c: done",
			"Esc: back",
			"?: help",
		}
	}

	return m.styles.TUIHelp.Render(strings.Join(hints, "  •  "))
}

func (m Model) renderDetailRow(label, value string) string {
	return m.styles.DetailLabel.Render(label) + " " + m.styles.DetailValue.Render(value)
}
