package service

import (
	"context"

	"choreboard/internal/domain"
	"choreboard/internal/repository"
)

const notificationListLimit = 50

type NotificationService struct {
	notifications repository.NotificationRepository
}

func NewNotificationService(repos repository.Repositories) *NotificationService {
	return &NotificationService{notifications: repos.Notifications}
}

// the actor's own and system notifications, newest first
func (s *NotificationService) List(ctx context.Context, actor *domain.User) ([]*domain.Notification, error) {
	if err := requireUser(actor); err != nil {
		return nil, err
	}
	return s.notifications.ListForUser(ctx, actor.ID, notificationListLimit)
}

func (s *NotificationService) MarkRead(ctx context.Context, actor *domain.User, id int64) (*domain.Notification, error) {
	if err := requireUser(actor); err != nil {
		return nil, err
	}
	return s.notifications.MarkRead(ctx, id, actor.ID)
}

// returns how many notifications changed
func (s *NotificationService) MarkAllRead(ctx context.Context, actor *domain.User) (int64, error) {
	if err := requireUser(actor); err != nil {
		return 0, err
	}
	return s.notifications.MarkAllRead(ctx, actor.ID)
}
