package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"choreboard/internal/domain"
)

type NotificationRepository struct {
	db *DB
}

func NewNotificationRepository(db *DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

const notificationColumns = "id, user_id, task_id, message, type, is_read, created_at"

type dbNotification struct {
	ID        int64         `db:"id"`
	UserID    sql.NullInt64 `db:"user_id"`
	TaskID    sql.NullInt64 `db:"task_id"`
	Message   string        `db:"message"`
	Type      string        `db:"type"`
	IsRead    bool          `db:"is_read"`
	CreatedAt time.Time     `db:"created_at"`
}

func (dn *dbNotification) toNotification() *domain.Notification {
	return &domain.Notification{
		ID:        dn.ID,
		UserID:    int64Ptr(dn.UserID),
		TaskID:    int64Ptr(dn.TaskID),
		Message:   dn.Message,
		Type:      domain.NotificationType(dn.Type),
		IsRead:    dn.IsRead,
		CreatedAt: dn.CreatedAt,
	}
}

// inserts all notifications in one transaction
func (r *NotificationRepository) CreateMany(ctx context.Context, notifications []*domain.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, `
		INSERT INTO notifications (user_id, task_id, message, type, is_read, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := utc(time.Now())
	for _, n := range notifications {
		if n.CreatedAt.IsZero() {
			n.CreatedAt = now
		}
		n.CreatedAt = utc(n.CreatedAt)

		result, err := stmt.ExecContext(ctx,
			nullInt64(n.UserID),
			nullInt64(n.TaskID),
			n.Message,
			string(n.Type),
			n.IsRead,
			n.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert notification: %w", err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get last insert ID: %w", err)
		}
		n.ID = id
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit notifications: %w", err)
	}

	return nil
}

// the user's own and system notifications, newest first
func (r *NotificationRepository) ListForUser(ctx context.Context, userID int64, limit int) ([]*domain.Notification, error) {
	query := "SELECT " + notificationColumns + ` FROM notifications
		WHERE user_id = ? OR user_id IS NULL
		ORDER BY created_at DESC, id DESC`
	args := []interface{}{userID}

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	var rows []dbNotification
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	notifications := make([]*domain.Notification, 0, len(rows))
	for i := range rows {
		notifications = append(notifications, rows[i].toNotification())
	}

	return notifications, nil
}

// marks one of the user's (or a system) notification as read
func (r *NotificationRepository) MarkRead(ctx context.Context, id int64, userID int64) (*domain.Notification, error) {
	query := `UPDATE notifications SET is_read = 1 WHERE id = ? AND (user_id = ? OR user_id IS NULL)`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to mark notification read: %w", err)
	}
	if err := expectOneRow(result, "notification", id); err != nil {
		return nil, err
	}

	var row dbNotification
	if err := r.db.GetContext(ctx, &row, "SELECT "+notificationColumns+" FROM notifications WHERE id = ?", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("notification %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}

	return row.toNotification(), nil
}

// returns how many notifications changed
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE notifications SET is_read = 1 WHERE user_id = ? AND is_read = 0`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows, nil
}

func (r *NotificationRepository) ExistsSince(ctx context.Context, taskID int64, typ domain.NotificationType, since time.Time) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM notifications WHERE task_id = ? AND type = ? AND created_at >= ?)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, taskID, string(typ), utc(since)); err != nil {
		return false, fmt.Errorf("failed to check notifications: %w", err)
	}

	return exists, nil
}
