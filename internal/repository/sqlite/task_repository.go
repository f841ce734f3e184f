package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"choreboard/internal/domain"
	"choreboard/internal/repository"
)

type TaskRepository struct {
	db *DB
}

func NewTaskRepository(db *DB) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = "id, name, description, location, frequency, is_important, image_url, is_active, created_at, updated_at"

type dbTask struct {
	ID          int64            `db:"id"`
	Name        string           `db:"name"`
	Description string           `db:"description"`
	Location    string           `db:"location"`
	Frequency   domain.Frequency `db:"frequency"`
	IsImportant bool             `db:"is_important"`
	ImageURL    sql.NullString   `db:"image_url"`
	IsActive    bool             `db:"is_active"`
	CreatedAt   time.Time        `db:"created_at"`
	UpdatedAt   time.Time        `db:"updated_at"`
}

// converts dbTask to a domain.Task
func (dt *dbTask) toTask() *domain.Task {
	task := &domain.Task{
		ID:          dt.ID,
		Name:        dt.Name,
		Description: dt.Description,
		Location:    domain.Location(dt.Location),
		Frequency:   dt.Frequency,
		IsImportant: dt.IsImportant,
		IsActive:    dt.IsActive,
		CreatedAt:   dt.CreatedAt,
		UpdatedAt:   dt.UpdatedAt,
	}

	if dt.ImageURL.Valid {
		task.ImageURL = dt.ImageURL.String
	}

	return task
}

// insert a new task
func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	// set timestamps
	now := time.Now()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	if task.UpdatedAt.IsZero() {
		task.UpdatedAt = now
	}
	task.CreatedAt = utc(task.CreatedAt)
	task.UpdatedAt = utc(task.UpdatedAt)
	task.IsActive = true

	query := `
		INSERT INTO tasks (name, description, location, frequency, is_important, image_url, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, 1, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		task.Name,
		task.Description,
		task.Location,
		task.Frequency,
		task.IsImportant,
		nullString(task.ImageURL),
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}

	task.ID = id
	return nil
}

// get a task by its ID, inactive tasks included
func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	query := "SELECT " + taskColumns + " FROM tasks WHERE id = ?"

	var row dbTask
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return row.toTask(), nil
}

// count tasks with filtering (for pagination)
func (r *TaskRepository) Count(ctx context.Context, filter repository.TaskFilter) (int64, error) {
	query, args := r.buildWhereClause(filter, true)

	var count int64
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	return count, nil
}

// important tasks first, then oldest first
func (r *TaskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]*domain.Task, error) {
	query, args := r.buildWhereClause(filter, false)
	query += " ORDER BY is_important DESC, created_at ASC, id ASC"

	// add pagination
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)

		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	}

	var rows []dbTask
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	tasks := make([]*domain.Task, 0, len(rows))
	for i := range rows {
		tasks = append(tasks, rows[i].toTask())
	}

	return tasks, nil
}

// constructs the WHERE clause with all filters
func (r *TaskRepository) buildWhereClause(filter repository.TaskFilter, isCount bool) (string, []interface{}) {
	var query string
	if isCount {
		query = "SELECT COUNT(*) FROM tasks WHERE 1=1"
	} else {
		query = "SELECT " + taskColumns + " FROM tasks WHERE 1=1"
	}

	args := make([]interface{}, 0)

	if !filter.IncludeInactive {
		query += " AND is_active = 1"
	}
	if filter.Location != "" {
		query += " AND location = ?"
		args = append(args, filter.Location)
	}
	if filter.Frequency != 0 {
		query += " AND frequency = ?"
		args = append(args, filter.Frequency.String())
	}
	if filter.IsImportant != nil {
		query += " AND is_important = ?"
		args = append(args, *filter.IsImportant)
	}

	if filter.SearchQuery != "" {
		searchPattern := "%" + filter.SearchQuery + "%"
		query += " AND (name LIKE ? COLLATE NOCASE OR description LIKE ? COLLATE NOCASE)"
		args = append(args, searchPattern, searchPattern)
	}

	return query, args
}

// modify a task's definition; history and active flag are untouched
func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	task.UpdatedAt = utc(time.Now())

	query := `
		UPDATE tasks
		SET name = ?, description = ?, location = ?, frequency = ?, is_important = ?, image_url = ?, updated_at = ?
		WHERE id = ? AND is_active = 1
	`

	result, err := r.db.ExecContext(ctx, query,
		task.Name,
		task.Description,
		task.Location,
		task.Frequency,
		task.IsImportant,
		nullString(task.ImageURL),
		task.UpdatedAt,
		task.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	return expectOneRow(result, "task", task.ID)
}

// soft delete: the task disappears from lists but keeps its history
func (r *TaskRepository) Deactivate(ctx context.Context, id int64) error {
	query := `UPDATE tasks SET is_active = 0, updated_at = ? WHERE id = ? AND is_active = 1`

	result, err := r.db.ExecContext(ctx, query, utc(time.Now()), id)
	if err != nil {
		return fmt.Errorf("failed to deactivate task: %w", err)
	}

	return expectOneRow(result, "task", id)
}

// flips the important flag and returns the new value
func (r *TaskRepository) ToggleImportant(ctx context.Context, id int64) (bool, error) {
	query := `UPDATE tasks SET is_important = NOT is_important, updated_at = ? WHERE id = ? AND is_active = 1`

	result, err := r.db.ExecContext(ctx, query, utc(time.Now()), id)
	if err != nil {
		return false, fmt.Errorf("failed to toggle important: %w", err)
	}
	if err := expectOneRow(result, "task", id); err != nil {
		return false, err
	}

	var important bool
	if err := r.db.GetContext(ctx, &important, "SELECT is_important FROM tasks WHERE id = ?", id); err != nil {
		return false, fmt.Errorf("failed to read important flag: %w", err)
	}

	return important, nil
}

func expectOneRow(result sql.Result, entity string, id int64) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("%s %d: %w", entity, id, domain.ErrNotFound)
	}

	return nil
}
