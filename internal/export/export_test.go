package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/WatchBeam/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"choreboard/internal/domain"
	"choreboard/internal/service"
)

var exportNow = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

type stubLister struct {
	views []*service.TaskView
	query service.TaskQuery
	err   error
}

func (s *stubLister) ListTasks(ctx context.Context, q service.TaskQuery) ([]*service.TaskView, error) {
	s.query = q
	return s.views, s.err
}

func boardFixture() *stubLister {
	return &stubLister{views: []*service.TaskView{
		{
			Task:   &domain.Task{ID: 1, Name: "Take out the bins", Description: "All of them", Location: domain.LocationBackRoom, Frequency: domain.FrequencyDaily, IsImportant: true},
			Status: domain.DueStatus{NextDue: exportNow.Add(-3 * time.Hour), Urgency: domain.UrgencyOverdue},
		},
		{
			Task:           &domain.Task{ID: 2, Name: "Mop the hall", Description: "Blue mop", Location: domain.LocationHall, Frequency: domain.FrequencyWeekly},
			Status:         domain.DueStatus{NextDue: exportNow.Add(6 * 24 * time.Hour), IsCompleted: true, Urgency: domain.UrgencyFuture},
			LastCompletion: &domain.Completion{CompletedAt: exportNow.Add(-24*time.Hour + time.Minute), UserName: "Anna"},
		},
	}}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"json": FormatJSON, "CSV": FormatCSV, " markdown ": FormatMarkdown, "md": FormatMarkdown} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestExporter_Board(t *testing.T) {
	lister := boardFixture()
	e := NewExporter(lister, clock.NewMockClock(exportNow))

	q := service.TaskQuery{Location: domain.LocationHall}
	board, err := e.Board(context.Background(), q)
	require.NoError(t, err)

	assert.Equal(t, q, lister.query)
	assert.Equal(t, exportVersion, board.Version)
	assert.Equal(t, exportNow, board.ExportedAt)
	require.Len(t, board.Chores, 2)

	assert.Equal(t, "overdue", board.Chores[0].Urgency)
	assert.Equal(t, "daily", board.Chores[0].Frequency)
	assert.Nil(t, board.Chores[0].LastCompletedAt)

	require.NotNil(t, board.Chores[1].LastCompletedAt)
	assert.Equal(t, "Anna", board.Chores[1].LastCompletedBy)
	assert.True(t, board.Chores[1].IsCompleted)
}

func TestExporter_ListError(t *testing.T) {
	e := NewExporter(&stubLister{err: errors.New("boom")}, clock.NewMockClock(exportNow))

	var buf bytes.Buffer
	err := e.Export(context.Background(), &buf, FormatJSON, service.TaskQuery{})
	assert.ErrorContains(t, err, "boom")
	assert.Zero(t, buf.Len())
}

func TestExport_JSON(t *testing.T) {
	e := NewExporter(boardFixture(), clock.NewMockClock(exportNow))

	var buf bytes.Buffer
	require.NoError(t, e.Export(context.Background(), &buf, FormatJSON, service.TaskQuery{}))

	var decoded BoardExport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Len(t, decoded.Chores, 2)
	assert.Contains(t, buf.String(), `"urgency": "overdue"`)
	assert.NotContains(t, buf.String(), `"last_completed_at": null`)
}

func TestExport_CSV(t *testing.T) {
	e := NewExporter(boardFixture(), clock.NewMockClock(exportNow))

	var buf bytes.Buffer
	require.NoError(t, e.Export(context.Background(), &buf, FormatCSV, service.TaskQuery{}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "Name", records[0][1])
	assert.Equal(t, []string{"1", "Take out the bins", "All of them", "back_room", "daily", "true", "overdue", "false", "2024-03-10 06:00:00", "", ""}, records[1])
	assert.Equal(t, "2024-03-09 09:01:00", records[2][9])
	assert.Equal(t, "Anna", records[2][10])
}

func TestExport_Markdown(t *testing.T) {
	e := NewExporter(boardFixture(), clock.NewMockClock(exportNow))

	var buf bytes.Buffer
	require.NoError(t, e.Export(context.Background(), &buf, FormatMarkdown, service.TaskQuery{}))

	out := buf.String()
	assert.Contains(t, out, "# Chore board")
	assert.Contains(t, out, "## 🔥 Overdue (1)")
	assert.Contains(t, out, "- [ ] **Take out the bins** ⭐ (back_room, daily)")
	assert.Contains(t, out, "## ✓ Done (1)")
	assert.Contains(t, out, "- [x] **Mop the hall** (hall, weekly)")
	assert.Contains(t, out, "Last done: 2024-03-09 09:01 by Anna")
	assert.NotContains(t, out, "Due today")
}
