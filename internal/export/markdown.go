package export

import (
	"fmt"
	"io"
)

// markdown sections in board order, most pressing first
var markdownSections = []struct {
	urgency string
	title   string
}{
	{"overdue", "🔥 Overdue"},
	{"due_today", "⚡ Due today"},
	{"due_soon", "○ Due soon"},
	{"future", "· Upcoming"},
}

func writeMarkdown(w io.Writer, board *BoardExport) error {
	fmt.Fprintln(w, "# Chore board")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "_Exported %s_\n\n", board.ExportedAt.Format("2006-01-02 15:04 MST"))

	var done []*ChoreData
	byUrgency := make(map[string][]*ChoreData)
	for _, chore := range board.Chores {
		if chore.IsCompleted {
			done = append(done, chore)
			continue
		}
		byUrgency[chore.Urgency] = append(byUrgency[chore.Urgency], chore)
	}

	for _, section := range markdownSections {
		chores := byUrgency[section.urgency]
		if len(chores) == 0 {
			continue
		}
		fmt.Fprintf(w, "## %s (%d)\n\n", section.title, len(chores))
		for _, chore := range chores {
			writeChore(w, chore)
		}
		fmt.Fprintln(w)
	}

	if len(done) > 0 {
		fmt.Fprintf(w, "## ✓ Done (%d)\n\n", len(done))
		for _, chore := range done {
			writeChore(w, chore)
		}
		fmt.Fprintln(w)
	}

	return nil
}

func writeChore(w io.Writer, chore *ChoreData) {
	checkbox := "[ ]"
	if chore.IsCompleted {
		checkbox = "[x]"
	}

	important := ""
	if chore.IsImportant {
		important = " ⭐"
	}

	fmt.Fprintf(w, "- %s **%s**%s (%s, %s)\n", checkbox, chore.Name, important, chore.Location, chore.Frequency)
	fmt.Fprintf(w, "  - Next due: %s\n", chore.NextDue.Format("2006-01-02 15:04"))
	if chore.LastCompletedAt != nil {
		by := ""
		if chore.LastCompletedBy != "" {
			by = " by " + chore.LastCompletedBy
		}
		fmt.Fprintf(w, "  - Last done: %s%s\n", chore.LastCompletedAt.Format("2006-01-02 15:04"), by)
	}
}
