package theme

import (
	"choreboard/internal/domain"

	"github.com/charmbracelet/lipgloss"
)

type Styles struct {
	// cli
	Success   lipgloss.Style
	Error     lipgloss.Style
	Info      lipgloss.Style
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Header    lipgloss.Style
	Cell      lipgloss.Style
	Separator lipgloss.Style

	// urgency rows
	OverdueRow  lipgloss.Style
	DueTodayRow lipgloss.Style
	DueSoonRow  lipgloss.Style
	FutureRow   lipgloss.Style

	// tui
	TUITitle        lipgloss.Style
	TUISubtitle     lipgloss.Style
	TUIHelp         lipgloss.Style
	DetailContainer lipgloss.Style
	DetailLabel     lipgloss.Style
	DetailValue     lipgloss.Style
	OverdueText     lipgloss.Style
	DueTodayText    lipgloss.Style
	DueSoonText     lipgloss.Style
	FutureText      lipgloss.Style
	CompletedText   lipgloss.Style
	ImportantText   lipgloss.Style
}

// creates all styles based on the given theme
func NewStyles(t *Theme) *Styles {
	return &Styles{
		// cli
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Error)).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Primary)),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(t.Secondary)).
			PaddingTop(1).
			PaddingBottom(1),

		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.SubtitleText)).
			Italic(true),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(t.HeaderFg)).
			Background(lipgloss.Color(t.HeaderBg)).
			PaddingLeft(1).
			PaddingRight(1),

		Cell: lipgloss.NewStyle().
			PaddingLeft(1).
			PaddingRight(1),

		Separator: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Separator)),

		// urgency row
		OverdueRow: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.UrgencyOverdue)),

		DueTodayRow: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.UrgencyDueToday)),

		DueSoonRow: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.UrgencyDueSoon)),

		FutureRow: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.UrgencyFuture)),

		// tui
		TUITitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(t.TextPrimary)).
			Background(lipgloss.Color(t.HeaderBg)).
			Padding(0, 1),

		TUISubtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.TextSecondary)),

		TUIHelp: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.HelpText)),

		DetailContainer: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.BorderColor)).
			Padding(1, 2),

		DetailLabel: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Primary)).
			Bold(true),

		DetailValue: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.TextPrimary)),

		// urgency
		OverdueText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.UrgencyOverdue)).
			Bold(true),

		DueTodayText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.UrgencyDueToday)),

		DueSoonText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.UrgencyDueSoon)),

		FutureText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.UrgencyFuture)),

		// chore state
		CompletedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Completed)),

		ImportantText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Important)).
			Bold(true),
	}
}

// completed chores are shown in the completed colour regardless of urgency
func (s *Styles) GetRowStyle(status domain.DueStatus) lipgloss.Style {
	if status.IsCompleted {
		return s.CompletedText
	}

	switch status.Urgency {
	case domain.UrgencyOverdue:
		return s.OverdueRow
	case domain.UrgencyDueToday:
		return s.DueTodayRow
	case domain.UrgencyDueSoon:
		return s.DueSoonRow
	case domain.UrgencyFuture:
		return s.FutureRow
	default:
		return s.Cell
	}
}

func (s *Styles) GetUrgencyTextStyle(urgency domain.Urgency) lipgloss.Style {
	switch urgency {
	case domain.UrgencyOverdue:
		return s.OverdueText
	case domain.UrgencyDueToday:
		return s.DueTodayText
	case domain.UrgencyDueSoon:
		return s.DueSoonText
	case domain.UrgencyFuture:
		return s.FutureText
	default:
		return s.DetailValue
	}
}
