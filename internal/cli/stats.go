package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"choreboard/internal/domain"
	"choreboard/internal/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show how the board is doing",
	Long: `Display an overview of every active chore:

  - How many are overdue, due today, due soon or upcoming
  - How many were done in the last 24 hours
  - The completion rate across the board

Examples:
  choreboard stats`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	summary, err := a.tasks.Summary(ctx)
	if err != nil {
		fmt.Println(a.styles.Error.Render(fmt.Sprintf("✗ Failed to get statistics: %v", err)))
		return nil
	}

	displayBoardSummary(summary, a.styles)
	fmt.Printf("Calculated at: %s\n", a.clock.Now().Local().Format("2006-01-02 15:04:05"))
	fmt.Println()

	return nil
}

func displayBoardSummary(summary *domain.BoardSummary, styles *theme.Styles) {
	fmt.Println()
	fmt.Println(styles.Title.Render("📊 Board Statistics"))
	fmt.Println()

	fmt.Println(styles.Subtitle.Render("Chores"))
	fmt.Printf("  Total:      %s\n", styles.Info.Render(fmt.Sprintf("%d", summary.Total)))
	fmt.Printf("  Important:  %s ★\n", styles.ImportantText.Render(fmt.Sprintf("%d", summary.Important)))
	fmt.Printf("  Done:       %s (last 24 hours)\n", styles.CompletedText.Render(fmt.Sprintf("%d", summary.Completed)))
	fmt.Println()

	fmt.Println(styles.Subtitle.Render("Urgency"))
	if summary.Total > 0 {
		rows := []struct {
			label string
			count int
			style func(...string) string
			char  string
		}{
			{"Overdue:  ", summary.Overdue, styles.OverdueText.Render, "█"},
			{"Due today:", summary.DueToday, styles.DueTodayText.Render, "▓"},
			{"Due soon: ", summary.DueSoon, styles.DueSoonText.Render, "▒"},
			{"Upcoming: ", summary.Future, styles.FutureText.Render, "░"},
		}
		for _, row := range rows {
			pct := float64(row.count) / float64(summary.Total) * 100
			fmt.Printf("  %s %s %s\n", row.label, row.style(renderBar(int(pct/5), 20, row.char)), fmt.Sprintf("%d (%.1f%%)", row.count, pct))
		}
	} else {
		fmt.Println("  No chores on the board")
	}
	fmt.Println()

	fmt.Println(styles.Subtitle.Render("Completion"))
	fmt.Printf("  Completion Rate:  %s\n", renderCompletionRate(summary.CompletionRate(), styles))
	fmt.Println()
}

func renderBar(value, maxWidth int, char string) string {
	if value > maxWidth {
		value = maxWidth
	}
	if value < 0 {
		value = 0
	}
	return strings.Repeat(char, value)
}

func renderCompletionRate(rate float64, styles *theme.Styles) string {
	bar := renderBar(int(rate/5), 20, "█")
	rateStr := fmt.Sprintf("%.1f%%", rate)

	if rate >= 80 {
		return fmt.Sprintf("%s %s", bar, styles.Success.Render(rateStr))
	} else if rate >= 50 {
		return fmt.Sprintf("%s %s", bar, styles.Info.Render(rateStr))
	} else if rate >= 25 {
		return fmt.Sprintf("%s %s", bar, styles.Cell.Render(rateStr))
	}
	return fmt.Sprintf("%s %s", bar, styles.Error.Render(rateStr))
}
