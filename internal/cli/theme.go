package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"choreboard/internal/config"
	"choreboard/internal/theme"
	"choreboard/internal/tui"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Manage the terminal colour theme",
	Long: `Manage the colour theme used by the board and command output.

Run without arguments to launch the interactive theme selector.
Custom palettes can be added as YAML files in ~/.choreboard/themes;
colours left out are taken from the default theme.

Examples:
  choreboard theme              # Launch interactive selector
  choreboard theme set dracula  # Set theme directly
  choreboard theme list         # List available themes
  choreboard theme show         # Show the urgency palette`,
	RunE: runThemeTUI,
}

var themeSetCmd = &cobra.Command{
	Use:   "set [theme-name]",
	Short: "Set the theme",
	Args:  cobra.ExactArgs(1),
	RunE:  runThemeSet,
}

var themeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available themes",
	RunE:  runThemeList,
}

var themeShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current theme's palette",
	RunE:  runThemeShow,
}

func init() {
	rootCmd.AddCommand(themeCmd)
	themeCmd.AddCommand(themeSetCmd, themeListCmd, themeShowCmd)
}

func runThemeTUI(cmd *cobra.Command, args []string) error {
	active := ""
	if cfg, err := config.LoadConfig(); err == nil {
		active = cfg.ThemeName
	}

	model := tui.NewSetupModel(active, config.UpdateTheme)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run theme selector: %w", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.ThemeName != "" {
		fmt.Println()
		fmt.Printf("✓ Theme set to '%s'\n", cfg.ThemeName)
		fmt.Println()
	}

	return nil
}

func runThemeSet(cmd *cobra.Command, args []string) error {
	themeName := args[0]

	if !theme.ThemeExists(themeName) {
		return fmt.Errorf("theme '%s' not found. Run 'choreboard theme list' to see available themes", themeName)
	}

	if err := config.UpdateTheme(themeName); err != nil {
		return fmt.Errorf("failed to update theme: %w", err)
	}

	fmt.Printf("✓ Theme set to '%s'\n", themeName)
	return nil
}

func runThemeList(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		cfg = config.GetDefaultConfig()
	}
	current, styles := loadTheme(cfg)

	fmt.Println()
	fmt.Println(styles.Header.Render(" Available Themes "))
	fmt.Println()

	for _, name := range theme.ListThemes() {
		prefix := "  "
		if name == current.Name {
			prefix = "▶ "
			name = styles.Success.Render(name + " (current)")
		}
		fmt.Printf("%s%s\n", prefix, name)
	}

	fmt.Println()
	return nil
}

func runThemeShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	themeObj, styles := loadTheme(cfg)

	fmt.Println()
	fmt.Println(styles.Header.Render(fmt.Sprintf(" Current Theme: %s ", themeObj.Name)))
	fmt.Println()

	palette := []struct {
		name  string
		color string
	}{
		{"Overdue", themeObj.UrgencyOverdue},
		{"Due today", themeObj.UrgencyDueToday},
		{"Due soon", themeObj.UrgencyDueSoon},
		{"Upcoming", themeObj.UrgencyFuture},
		{"Done", themeObj.Completed},
		{"Important", themeObj.Important},
		{"Primary", themeObj.Primary},
		{"Text", themeObj.TextPrimary},
		{"Border", themeObj.BorderColor},
	}

	for _, entry := range palette {
		sample := lipgloss.NewStyle().
			Background(lipgloss.Color(entry.color)).
			Foreground(lipgloss.Color(entry.color)).
			Render("  ████  ")
		fmt.Printf("  %-12s %s %s\n", entry.name+":", sample, entry.color)
	}

	fmt.Println()
	return nil
}
