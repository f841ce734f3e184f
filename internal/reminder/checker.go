// Package reminder periodically turns overdue and due chores into notifications.
package reminder

import (
	"context"
	"time"

	"github.com/WatchBeam/clock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"choreboard/internal/domain"
	"choreboard/internal/repository"
	"choreboard/internal/service"
)

const (
	// how far past its due date a task must be before it counts as overdue
	overdueAfter = 24 * time.Hour

	overdueDedupe = 24 * time.Hour
	dueDedupe     = 12 * time.Hour
)

type TaskLister interface {
	ListTasks(ctx context.Context, q service.TaskQuery) ([]*service.TaskView, error)
}

type Checker struct {
	tasks         TaskLister
	users         repository.UserRepository
	notifications repository.NotificationRepository
	clock         clock.Clock
	logger        zerolog.Logger
	sent          *prometheus.CounterVec
}

// reg may be nil when the counters should not be exported
func NewChecker(tasks TaskLister, repos repository.Repositories, c clock.Clock, logger zerolog.Logger, reg prometheus.Registerer) *Checker {
	if c == nil {
		c = clock.C
	}

	sent := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "choreboard",
		Subsystem: "reminder",
		Name:      "notifications_total",
		Help:      "Notifications created by the reminder checker.",
	}, []string{"type"})
	if reg != nil {
		if err := reg.Register(sent); err != nil {
			if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
				sent = are.ExistingCollector.(*prometheus.CounterVec)
			} else {
				logger.Warn().Err(err).Msg("failed to register reminder metrics")
			}
		}
	}

	return &Checker{
		tasks:         tasks,
		users:         repos.Users,
		notifications: repos.Notifications,
		clock:         c,
		logger:        logger,
		sent:          sent,
	}
}

// Check runs one pass over the active tasks and returns how many
// notifications it created.
func (c *Checker) Check(ctx context.Context) (int, error) {
	views, err := c.tasks.ListTasks(ctx, service.TaskQuery{})
	if err != nil {
		return 0, err
	}

	now := c.clock.Now()
	var users []*domain.User
	var batch []*domain.Notification

	for _, v := range views {
		late := now.Sub(v.Status.NextDue)

		var typ domain.NotificationType
		var window time.Duration
		switch {
		case late > overdueAfter:
			typ, window = domain.NotificationTaskOverdue, overdueDedupe
		case late > 0:
			typ, window = domain.NotificationTaskDue, dueDedupe
		default:
			continue
		}

		exists, err := c.notifications.ExistsSince(ctx, v.ID, typ, now.Add(-window))
		if err != nil {
			return 0, err
		}
		if exists {
			continue
		}

		// loaded once, only when something needs sending
		if users == nil {
			users, err = c.users.List(ctx)
			if err != nil {
				return 0, err
			}
		}

		for _, u := range users {
			var n *domain.Notification
			if typ == domain.NotificationTaskOverdue {
				n = domain.NewOverdueNotification(u.ID, v.Task, late)
			} else {
				n = domain.NewDueNotification(u.ID, v.Task)
			}
			n.CreatedAt = now
			batch = append(batch, n)
		}
	}

	if len(batch) == 0 {
		return 0, nil
	}

	if err := c.notifications.CreateMany(ctx, batch); err != nil {
		return 0, err
	}

	for _, n := range batch {
		c.sent.WithLabelValues(string(n.Type)).Inc()
	}
	c.logger.Info().Int("notifications", len(batch)).Msg("reminders created")

	return len(batch), nil
}

// Run checks immediately and then every interval until ctx is done.
// A failed pass is logged and the loop carries on.
func (c *Checker) Run(ctx context.Context, interval time.Duration) error {
	c.logger.Info().Dur("interval", interval).Msg("reminder checker started")

	for {
		if _, err := c.Check(ctx); err != nil && ctx.Err() == nil {
			c.logger.Error().Err(err).Msg("reminder check failed")
		}

		select {
		case <-ctx.Done():
			c.logger.Info().Msg("reminder checker stopped")
			return ctx.Err()
		case <-c.clock.After(interval):
		}
	}
}
