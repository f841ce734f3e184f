package export

import (
	"context"
	"fmt"
	"io"

	"github.com/WatchBeam/clock"

	"choreboard/internal/service"
)

type Exporter struct {
	tasks TaskLister
	clock clock.Clock
}

func NewExporter(tasks TaskLister, c clock.Clock) *Exporter {
	if c == nil {
		c = clock.C
	}
	return &Exporter{tasks: tasks, clock: c}
}

// Board evaluates every chore matching q at the current time.
func (e *Exporter) Board(ctx context.Context, q service.TaskQuery) (*BoardExport, error) {
	views, err := e.tasks.ListTasks(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	chores := make([]*ChoreData, 0, len(views))
	for _, view := range views {
		chores = append(chores, convertTask(view))
	}

	return &BoardExport{
		Version:    exportVersion,
		ExportedAt: e.clock.Now().UTC(),
		Chores:     chores,
	}, nil
}

func (e *Exporter) Export(ctx context.Context, w io.Writer, format Format, q service.TaskQuery) error {
	board, err := e.Board(ctx, q)
	if err != nil {
		return err
	}

	switch format {
	case FormatJSON:
		return writeJSON(w, board)
	case FormatCSV:
		return writeCSV(w, board)
	case FormatMarkdown:
		return writeMarkdown(w, board)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}
