package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"choreboard/internal/domain"
)

type CompletionRepository struct {
	db *DB
}

func NewCompletionRepository(db *DB) *CompletionRepository {
	return &CompletionRepository{db: db}
}

// completion joined with the user who did it and the task it belongs to
const completionSelect = `
	SELECT c.id, c.task_id, c.user_id, c.completed_at, c.completion_image, c.notes,
		u.name AS user_name, u.apartment_number AS user_apartment,
		t.name AS task_name, t.location AS task_location
	FROM task_completions c
	LEFT JOIN users u ON u.id = c.user_id
	LEFT JOIN tasks t ON t.id = c.task_id
`

type dbCompletion struct {
	ID              int64          `db:"id"`
	TaskID          int64          `db:"task_id"`
	UserID          int64          `db:"user_id"`
	CompletedAt     time.Time      `db:"completed_at"`
	CompletionImage sql.NullString `db:"completion_image"`
	Notes           sql.NullString `db:"notes"`
	UserName        sql.NullString `db:"user_name"`
	UserApartment   sql.NullString `db:"user_apartment"`
	TaskName        sql.NullString `db:"task_name"`
	TaskLocation    sql.NullString `db:"task_location"`
}

func (dc *dbCompletion) toCompletion() *domain.Completion {
	return &domain.Completion{
		ID:              dc.ID,
		TaskID:          dc.TaskID,
		UserID:          dc.UserID,
		CompletedAt:     dc.CompletedAt,
		CompletionImage: dc.CompletionImage.String,
		Notes:           dc.Notes.String,
		UserName:        dc.UserName.String,
		UserApartment:   dc.UserApartment.String,
		TaskName:        dc.TaskName.String,
		TaskLocation:    domain.Location(dc.TaskLocation.String),
	}
}

// append a completion record
func (r *CompletionRepository) Create(ctx context.Context, completion *domain.Completion) error {
	if err := completion.Validate(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	completion.CompletedAt = utc(completion.CompletedAt)

	query := `
		INSERT INTO task_completions (task_id, user_id, completed_at, completion_image, notes)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		completion.TaskID,
		completion.UserID,
		completion.CompletedAt,
		nullString(completion.CompletionImage),
		nullString(completion.Notes),
	)
	if err != nil {
		return fmt.Errorf("failed to insert completion: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}

	completion.ID = id
	return nil
}

// newest first, limit 0 = all
func (r *CompletionRepository) ListByTask(ctx context.Context, taskID int64, limit int) ([]*domain.Completion, error) {
	query := completionSelect + " WHERE c.task_id = ? ORDER BY c.completed_at DESC, c.id DESC"
	args := []interface{}{taskID}

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	return r.selectCompletions(ctx, query, args...)
}

func (r *CompletionRepository) Latest(ctx context.Context, taskID int64) (*domain.Completion, error) {
	completions, err := r.ListByTask(ctx, taskID, 1)
	if err != nil {
		return nil, err
	}
	if len(completions) == 0 {
		return nil, nil
	}
	return completions[0], nil
}

// latest completion for each of the given tasks in a single query
func (r *CompletionRepository) LatestForTasks(ctx context.Context, taskIDs []int64) (map[int64]*domain.Completion, error) {
	latest := make(map[int64]*domain.Completion, len(taskIDs))
	if len(taskIDs) == 0 {
		return latest, nil
	}

	query, args := buildINQuery(completionSelect+`
		WHERE c.task_id IN (?)
		AND c.id = (
			SELECT c2.id FROM task_completions c2
			WHERE c2.task_id = c.task_id
			ORDER BY c2.completed_at DESC, c2.id DESC
			LIMIT 1
		)
	`, taskIDs)

	completions, err := r.selectCompletions(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	for _, c := range completions {
		latest[c.TaskID] = c
	}

	return latest, nil
}

// newest first, with task name and location
func (r *CompletionRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]*domain.Completion, error) {
	query := completionSelect + " WHERE c.user_id = ? ORDER BY c.completed_at DESC, c.id DESC"
	args := []interface{}{userID}

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	return r.selectCompletions(ctx, query, args...)
}

func (r *CompletionRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM task_completions WHERE user_id = ?", userID); err != nil {
		return 0, fmt.Errorf("failed to count completions: %w", err)
	}
	return count, nil
}

func (r *CompletionRepository) selectCompletions(ctx context.Context, query string, args ...interface{}) ([]*domain.Completion, error) {
	var rows []dbCompletion
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list completions: %w", err)
	}

	completions := make([]*domain.Completion, 0, len(rows))
	for i := range rows {
		completions = append(completions, rows[i].toCompletion())
	}

	return completions, nil
}
