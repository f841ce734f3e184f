package domain

import (
	"fmt"
	"time"
)

type NotificationType string

const (
	NotificationTaskOverdue   NotificationType = "task_overdue"
	NotificationTaskDue       NotificationType = "task_due"
	NotificationTaskCompleted NotificationType = "task_completed"
)

// A Notification with a nil UserID is a system notification shown to everyone.
type Notification struct {
	ID        int64            `db:"id" json:"id"`
	UserID    *int64           `db:"user_id" json:"user_id,omitempty"`
	TaskID    *int64           `db:"task_id" json:"task_id,omitempty"`
	Message   string           `db:"message" json:"message"`
	Type      NotificationType `db:"type" json:"type"`
	IsRead    bool             `db:"is_read" json:"is_read"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`
}

func NewOverdueNotification(userID int64, task *Task, overdueBy time.Duration) *Notification {
	days := int(overdueBy.Hours() / 24)
	return newTaskNotification(userID, task, NotificationTaskOverdue,
		fmt.Sprintf("Task %q is overdue by %d days", task.Name, days))
}

func NewDueNotification(userID int64, task *Task) *Notification {
	return newTaskNotification(userID, task, NotificationTaskDue,
		fmt.Sprintf("Task %q is due today", task.Name))
}

func NewCompletedNotification(userID int64, task *Task, completedBy string) *Notification {
	return newTaskNotification(userID, task, NotificationTaskCompleted,
		fmt.Sprintf("Task %q was completed by %s", task.Name, completedBy))
}

func newTaskNotification(userID int64, task *Task, typ NotificationType, message string) *Notification {
	uid, tid := userID, task.ID
	return &Notification{
		UserID:  &uid,
		TaskID:  &tid,
		Message: message,
		Type:    typ,
	}
}
