package repository

import (
	"context"

	"choreboard/internal/domain"
)

// Completions are append-only: there is no update or delete.
type CompletionRepository interface {
	Create(ctx context.Context, completion *domain.Completion) error

	// newest first, limit 0 = all
	ListByTask(ctx context.Context, taskID int64, limit int) ([]*domain.Completion, error)

	// nil when the task was never completed
	Latest(ctx context.Context, taskID int64) (*domain.Completion, error)

	// latest completion per task; tasks never completed are absent from the map
	LatestForTasks(ctx context.Context, taskIDs []int64) (map[int64]*domain.Completion, error)

	ListByUser(ctx context.Context, userID int64, limit int) ([]*domain.Completion, error)

	CountByUser(ctx context.Context, userID int64) (int64, error)
}
