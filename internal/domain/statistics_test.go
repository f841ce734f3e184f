package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoardSummary(t *testing.T) {
	var s BoardSummary
	assert.Equal(t, 0.0, s.CompletionRate())

	s.Add(&Task{IsImportant: true}, DueStatus{Urgency: UrgencyOverdue})
	s.Add(&Task{}, DueStatus{Urgency: UrgencyDueToday, IsCompleted: true})
	s.Add(&Task{}, DueStatus{Urgency: UrgencyDueSoon})
	s.Add(&Task{IsImportant: true}, DueStatus{Urgency: UrgencyFuture, IsCompleted: true})

	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.Completed)
	assert.Equal(t, 2, s.Important)
	assert.Equal(t, 1, s.Overdue)
	assert.Equal(t, 1, s.DueToday)
	assert.Equal(t, 1, s.DueSoon)
	assert.Equal(t, 1, s.Future)
	assert.InDelta(t, 50.0, s.CompletionRate(), 0.001)
}
