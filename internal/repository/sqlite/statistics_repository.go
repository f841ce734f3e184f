package sqlite

import (
	"context"
	"fmt"
	"time"

	"choreboard/internal/domain"
)

type StatisticsRepository struct {
	db          *DB
	completions *CompletionRepository
}

func NewStatisticsRepository(db *DB) *StatisticsRepository {
	return &StatisticsRepository{
		db:          db,
		completions: NewCompletionRepository(db),
	}
}

// total completions and the most recent ones for a user
func (r *StatisticsRepository) GetUserStatistics(ctx context.Context, userID int64, recentLimit int, now time.Time) (*domain.UserStats, error) {
	total, err := r.completions.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get total completions: %w", err)
	}

	recent, err := r.completions.ListByUser(ctx, userID, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent completions: %w", err)
	}

	return &domain.UserStats{
		UserID:            userID,
		TotalCompletions:  total,
		RecentCompletions: recent,
		CalculatedAt:      now,
	}, nil
}
