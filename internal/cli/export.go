package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"choreboard/internal/domain"
	"choreboard/internal/export"
	"choreboard/internal/service"
)

var (
	exportOutput   string
	exportFormat   string
	exportLocation string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the board with its due status",
	Long: `Export every active chore with its status as of now.

Supported formats:
  - json: Structured JSON format (default)
  - csv: Comma-separated values for spreadsheets
  - markdown: Human-readable checklist

Examples:
  choreboard export --output board.json
  choreboard export --format csv --output board.csv
  choreboard export --format markdown --location hall`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Export format (json, csv, markdown)")
	exportCmd.Flags().StringVarP(&exportLocation, "location", "l", "", "Only export chores at this location")
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}

	var q service.TaskQuery
	if exportLocation != "" {
		if q.Location, err = domain.ParseLocation(exportLocation); err != nil {
			return err
		}
	}

	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	var w io.Writer = os.Stdout
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := export.NewExporter(a.tasks, a.clock).Export(ctx, w, format, q); err != nil {
		fmt.Fprintln(os.Stderr, a.styles.Error.Render(fmt.Sprintf("✗ Export failed: %v", err)))
		return nil
	}

	if exportOutput != "" {
		fmt.Println(a.styles.Success.Render(fmt.Sprintf("✓ Board exported to %s", exportOutput)))
	}
	return nil
}
