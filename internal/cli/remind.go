package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"choreboard/internal/reminder"
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Run one reminder pass",
	Long: `Check every chore once and create overdue and due notifications,
the same pass 'choreboard serve' runs on its check interval. Useful from cron
when the API server is not running.`,
	Annotations: map[string]string{headlessAnnotation: ""},
	RunE:        runRemind,
}

func init() {
	rootCmd.AddCommand(remindCmd)
}

func runRemind(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := openServerApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	checker := reminder.NewChecker(a.tasks, a.repos, a.clock, a.logger, nil)
	sent, err := checker.Check(ctx)
	if err != nil {
		return fmt.Errorf("reminder check failed: %w", err)
	}

	fmt.Println(a.styles.Success.Render(fmt.Sprintf("✓ %d notification(s) created", sent)))
	return nil
}
