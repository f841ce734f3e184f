package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

const csvTimeLayout = "2006-01-02 15:04:05"

func writeCSV(w io.Writer, board *BoardExport) error {
	writer := csv.NewWriter(w)

	header := []string{"ID", "Name", "Description", "Location", "Frequency", "Important", "Urgency", "Completed", "Next Due", "Last Completed", "Last Completed By"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, chore := range board.Chores {
		row := []string{
			strconv.FormatInt(chore.ID, 10),
			chore.Name,
			chore.Description,
			chore.Location,
			chore.Frequency,
			strconv.FormatBool(chore.IsImportant),
			chore.Urgency,
			strconv.FormatBool(chore.IsCompleted),
			chore.NextDue.Format(csvTimeLayout),
			formatOptionalTime(chore.LastCompletedAt),
			chore.LastCompletedBy,
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(csvTimeLayout)
}
