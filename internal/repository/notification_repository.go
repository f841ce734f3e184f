package repository

import (
	"context"
	"time"

	"choreboard/internal/domain"
)

type NotificationRepository interface {
	CreateMany(ctx context.Context, notifications []*domain.Notification) error

	// the user's own and system notifications, newest first
	ListForUser(ctx context.Context, userID int64, limit int) ([]*domain.Notification, error)

	MarkRead(ctx context.Context, id int64, userID int64) (*domain.Notification, error)
	MarkAllRead(ctx context.Context, userID int64) (int64, error)

	// reports whether a notification of this type was sent for the task since the given time
	ExistsSince(ctx context.Context, taskID int64, typ domain.NotificationType, since time.Time) (bool, error)
}
