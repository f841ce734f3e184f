package repository

import (
	"context"

	"choreboard/internal/domain"
)

type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]*domain.Task, error)
	Count(ctx context.Context, filter TaskFilter) (int64, error)
	Update(ctx context.Context, task *domain.Task) error
	Deactivate(ctx context.Context, id int64) error
	ToggleImportant(ctx context.Context, id int64) (bool, error)
}

// filtering options for task lists
type TaskFilter struct {
	Location    domain.Location
	Frequency   domain.Frequency
	IsImportant *bool

	// soft deleted tasks are hidden unless set
	IncludeInactive bool

	// matched against name and description
	SearchQuery string

	// pagination
	Limit  int // max number of results (0 = no limit)
	Offset int // number of results to skip
}
