package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"choreboard/internal/theme"
)

// table styles for the board, following the active theme
func tableStyles(t *theme.Theme) table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(t.BorderColor)).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color(t.SelectedFg)).
		Background(lipgloss.Color(t.SelectedBg)).
		Bold(true)
	return s
}
