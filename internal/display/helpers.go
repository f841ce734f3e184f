package display

import (
	"fmt"
	"time"

	"choreboard/internal/domain"
)

func GetUrgencyIcon(urgency domain.Urgency) string {
	switch urgency {
	case domain.UrgencyOverdue:
		return "🔥"
	case domain.UrgencyDueToday:
		return "⚡"
	case domain.UrgencyDueSoon:
		return "○"
	case domain.UrgencyFuture:
		return "·"
	default:
		return "?"
	}
}

func GetUrgencyLabel(urgency domain.Urgency) string {
	switch urgency {
	case domain.UrgencyOverdue:
		return "Overdue"
	case domain.UrgencyDueToday:
		return "Due today"
	case domain.UrgencyDueSoon:
		return "Due soon"
	case domain.UrgencyFuture:
		return "Upcoming"
	default:
		return "Unknown"
	}
}

// badge shown in lists: completed chores read as done whatever their urgency
func StatusBadge(status domain.DueStatus) string {
	if status.IsCompleted {
		return "✓ Done"
	}
	return GetUrgencyIcon(status.Urgency) + " " + GetUrgencyLabel(status.Urgency)
}

// relative description of a due date
func FormatNextDue(due, now time.Time) string {
	diff := due.Sub(now)

	// overdue
	if diff < 0 {
		days := int(-diff.Hours() / 24)
		if days == 0 {
			hours := int(-diff.Hours())
			if hours == 0 {
				return "just now"
			}
			return fmt.Sprintf("%dh late", hours)
		}
		return fmt.Sprintf("%dd late", days)
	}

	// due soon
	if diff < 24*time.Hour {
		return fmt.Sprintf("in %dh", int(diff.Hours()))
	}

	days := int(diff.Hours() / 24)
	if days == 1 {
		return "Tomorrow"
	} else if days <= 7 {
		return fmt.Sprintf("in %dd", days)
	}

	return due.Format("2006-01-02")
}

// when and by whom a chore was last done
func FormatLastCompletion(c *domain.Completion, now time.Time) string {
	if c == nil {
		return "never"
	}

	ago := now.Sub(c.CompletedAt)
	var when string
	switch {
	case ago < time.Hour:
		when = fmt.Sprintf("%dm ago", int(ago.Minutes()))
	case ago < 24*time.Hour:
		when = fmt.Sprintf("%dh ago", int(ago.Hours()))
	default:
		when = fmt.Sprintf("%dd ago", int(ago.Hours()/24))
	}

	if c.UserName == "" {
		return when
	}
	return when + " by " + c.UserName
}

// cuts s to max runes, ending with an ellipsis
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
