package domain

import "time"

// completion statistics for one user
type UserStats struct {
	UserID            int64         `json:"user_id"`
	TotalCompletions  int64         `json:"total_completions"`
	RecentCompletions []*Completion `json:"recent_completions"`
	CalculatedAt      time.Time     `json:"calculated_at"`
}

// urgency breakdown across all active tasks
type BoardSummary struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Overdue   int `json:"overdue"`
	DueToday  int `json:"due_today"`
	DueSoon   int `json:"due_soon"`
	Future    int `json:"future"`
	Important int `json:"important"`
}

// tallies one task's status into the summary
func (s *BoardSummary) Add(task *Task, status DueStatus) {
	s.Total++
	if task.IsImportant {
		s.Important++
	}
	if status.IsCompleted {
		s.Completed++
	}

	switch status.Urgency {
	case UrgencyOverdue:
		s.Overdue++
	case UrgencyDueToday:
		s.DueToday++
	case UrgencyDueSoon:
		s.DueSoon++
	case UrgencyFuture:
		s.Future++
	}
}

// percentage of tasks currently in the completed state
func (s *BoardSummary) CompletionRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Completed) / float64(s.Total) * 100
}
