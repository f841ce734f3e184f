package repository

import (
	"context"
	"time"

	"choreboard/internal/domain"
)

type StatisticsRepository interface {
	GetUserStatistics(ctx context.Context, userID int64, recentLimit int, now time.Time) (*domain.UserStats, error)
}
