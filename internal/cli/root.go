// Package cli is the choreboard command line: the api server, the reminder
// checker and a terminal view of the board.
package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"choreboard/internal/config"
	"choreboard/internal/theme"
	"choreboard/internal/tui"
)

// commands carrying this annotation never open the interactive theme setup
const headlessAnnotation = "headless"

var rootCmd = &cobra.Command{
	Use:   "choreboard",
	Short: "ChoreBoard - recurring cleaning duties for shared spaces",
	Long: `ChoreBoard keeps track of recurring cleaning tasks in a shared space.
Residents mark chores as done, everyone sees what is overdue, and managers
get notified when work gets finished.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if _, err := theme.LoadUserThemes(config.GetThemesDir()); err != nil {
			fmt.Fprintf(os.Stderr, "warning: skipped custom themes: %v\n", err)
		}
		if _, ok := cmd.Annotations[headlessAnnotation]; ok {
			return nil
		}
		return checkAndRunSetup()
	},
	Run: func(cmd *cobra.Command, args []string) {
		displayWelcome()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func displayWelcome() {
	cfg, err := config.LoadConfig()
	if err != nil {
		// fallback to default
		cfg = config.GetDefaultConfig()
	}
	_, styles := loadTheme(cfg)

	title := styles.Title.Render(`
		------------------------------------------------------

		             C H O R E B O A R D

		------------------------------------------------------
	`)
	subtitle := styles.Subtitle.Render("Many hands make light work")

	fmt.Println()
	fmt.Println(title)
	fmt.Println(subtitle)
	fmt.Println()
	fmt.Println("Run 'choreboard --help' to see available commands.")
	fmt.Println()
}

// checks if initial setup is needed and runs it
func checkAndRunSetup() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.ThemeName != "" {
		return nil
	}

	fmt.Println()
	fmt.Println("Welcome to ChoreBoard! Let's set up your theme.")
	fmt.Println()

	model := tui.NewSetupModel("", config.UpdateTheme)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run setup: %w", err)
	}

	// read config to see which theme was selected
	cfg, err = config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config after setup: %w", err)
	}

	fmt.Println()
	if cfg.ThemeName != "" {
		fmt.Printf("✓ Theme configured: '%s'\n", cfg.ThemeName)
	} else {
		fmt.Println("Theme configuration complete!")
	}
	fmt.Println()

	return nil
}
