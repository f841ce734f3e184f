package domain

import (
	"fmt"
	"strings"
	"time"
)

// how close a task's next occurrence is
type Urgency uint8

const (
	UrgencyOverdue Urgency = iota + 1
	UrgencyDueToday
	UrgencyDueSoon
	UrgencyFuture
)

const (
	dueTodayWindow  = 24 * time.Hour
	dueSoonWindow   = 72 * time.Hour
	completedWindow = 24 * time.Hour
)

func (u Urgency) String() string {
	switch u {
	case UrgencyOverdue:
		return "overdue"
	case UrgencyDueToday:
		return "due_today"
	case UrgencyDueSoon:
		return "due_soon"
	case UrgencyFuture:
		return "future"
	default:
		return fmt.Sprintf("Urgency(%d)", uint8(u))
	}
}

func (u Urgency) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

func (u *Urgency) UnmarshalText(text []byte) error {
	for _, candidate := range []Urgency{UrgencyOverdue, UrgencyDueToday, UrgencyDueSoon, UrgencyFuture} {
		if candidate.String() == string(text) {
			*u = candidate
			return nil
		}
	}
	return fmt.Errorf("invalid urgency: %q", string(text))
}

// DueStatus is derived on every read and never persisted.
type DueStatus struct {
	NextDue     time.Time `json:"next_due"`
	IsCompleted bool      `json:"is_completed"`
	Urgency     Urgency   `json:"urgency"`
}

// ClassifyUrgency buckets the time left until nextDue. Lower bounds are
// inclusive, upper bounds exclusive.
func ClassifyUrgency(nextDue, now time.Time) Urgency {
	left := nextDue.Sub(now)

	switch {
	case left < 0:
		return UrgencyOverdue
	case left < dueTodayWindow:
		return UrgencyDueToday
	case left < dueSoonWindow:
		return UrgencyDueSoon
	default:
		return UrgencyFuture
	}
}

// LatestCompletion returns the completion with the newest timestamp, or nil.
// Equal timestamps resolve to the most recently created record.
func LatestCompletion(completions []*Completion) *Completion {
	var latest *Completion
	for _, c := range completions {
		if c == nil {
			continue
		}
		if latest == nil ||
			c.CompletedAt.After(latest.CompletedAt) ||
			(c.CompletedAt.Equal(latest.CompletedAt) && c.ID > latest.ID) {
			latest = c
		}
	}
	return latest
}

// what a never completed task counts its due date from
type Anchor uint8

const (
	// due date slides forward with every evaluation until the first completion
	AnchorNow Anchor = iota
	// due date counts from when the task was created
	AnchorCreated
)

func (a Anchor) String() string {
	if a == AnchorCreated {
		return "created"
	}
	return "now"
}

func ParseAnchor(s string) (Anchor, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "now":
		return AnchorNow, nil
	case "created":
		return AnchorCreated, nil
	default:
		return AnchorNow, fmt.Errorf("invalid due anchor: %q (must be now or created)", s)
	}
}

// Evaluator derives due status. The zero value anchors never completed tasks
// to the evaluation time and counts calendar days in the zone of the base time.
type Evaluator struct {
	Anchor Anchor

	// calendar used for day and month offsets; nil keeps the base time's zone
	Location *time.Location
}

func (e Evaluator) Derive(task *Task, completions []*Completion, now time.Time) DueStatus {
	latest := LatestCompletion(completions)

	base := now
	switch {
	case latest != nil:
		base = latest.CompletedAt
	case e.Anchor == AnchorCreated && !task.CreatedAt.IsZero():
		base = task.CreatedAt
	}

	if e.Location != nil {
		base = base.In(e.Location)
	}
	nextDue := NextDue(task.Frequency, base)

	return DueStatus{
		NextDue:     nextDue,
		IsCompleted: latest != nil && now.Sub(latest.CompletedAt) < completedWindow,
		Urgency:     ClassifyUrgency(nextDue, now),
	}
}

// DeriveStatus evaluates a task with the default anchor.
func DeriveStatus(task *Task, completions []*Completion, now time.Time) DueStatus {
	return Evaluator{}.Derive(task, completions, now)
}
