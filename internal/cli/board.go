package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"choreboard/internal/domain"
	"choreboard/internal/service"
	"choreboard/internal/tui"
)

var (
	boardUser     string
	boardLocation string
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Launch the interactive chore board",
	Long: `Launch the interactive board. Chores are coloured by urgency and
completions are recorded as the given user.

Keyboard shortcuts:
  Board:
    ↑/k     Move up
    ↓/j     Move down
    Enter   View details and history
    /       Search
    l       Cycle location
    h       Hide done chores

  Actions:
    c       Mark done
    i       Toggle important (managers)
    r       Refresh

  Global:
    q       Quit
    ?       Toggle help

Examples:
  choreboard board --user 12
  choreboard board --user 12 --location hall`,
	RunE: runBoard,
}

func init() {
	rootCmd.AddCommand(boardCmd)

	boardCmd.Flags().StringVarP(&boardUser, "user", "u", "", "Apartment number of the acting user (default: the administrator)")
	boardCmd.Flags().StringVarP(&boardLocation, "location", "l", "", "Only show chores at this location")
}

func runBoard(cmd *cobra.Command, args []string) error {
	var q service.TaskQuery
	if boardLocation != "" {
		location, err := domain.ParseLocation(boardLocation)
		if err != nil {
			return err
		}
		q.Location = location
	}

	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	actor, err := a.actor(ctx, boardUser)
	if err != nil {
		return err
	}

	model := tui.NewModel(a.tasks, actor, a.clock, q, a.theme, a.styles)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run board: %w", err)
	}

	return nil
}
