// Package export writes the evaluated chore board to files.
package export

import (
	"context"
	"fmt"
	"strings"
	"time"

	"choreboard/internal/service"
)

const exportVersion = "1.0"

type Format string

const (
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatCSV, FormatMarkdown:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unsupported format %q (must be json, csv or markdown)", s)
	}
}

// the board read side the exporters need
type TaskLister interface {
	ListTasks(ctx context.Context, q service.TaskQuery) ([]*service.TaskView, error)
}

type BoardExport struct {
	Version    string       `json:"version"`
	ExportedAt time.Time    `json:"exported_at"`
	Chores     []*ChoreData `json:"chores"`
}

type ChoreData struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	Location        string     `json:"location"`
	Frequency       string     `json:"frequency"`
	IsImportant     bool       `json:"is_important"`
	Urgency         string     `json:"urgency"`
	IsCompleted     bool       `json:"is_completed"`
	NextDue         time.Time  `json:"next_due"`
	LastCompletedAt *time.Time `json:"last_completed_at,omitempty"`
	LastCompletedBy string     `json:"last_completed_by,omitempty"`
}

func convertTask(view *service.TaskView) *ChoreData {
	chore := &ChoreData{
		ID:          view.ID,
		Name:        view.Name,
		Description: view.Description,
		Location:    string(view.Location),
		Frequency:   view.Frequency.String(),
		IsImportant: view.IsImportant,
		Urgency:     view.Status.Urgency.String(),
		IsCompleted: view.Status.IsCompleted,
		NextDue:     view.Status.NextDue.UTC(),
	}

	if c := view.LastCompletion; c != nil {
		at := c.CompletedAt.UTC()
		chore.LastCompletedAt = &at
		chore.LastCompletedBy = c.UserName
	}

	return chore
}
