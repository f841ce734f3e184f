package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"choreboard/internal/domain"
)

type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = "id, name, apartment_number, password_hash, is_manager, created_at"

type dbUser struct {
	ID              int64         `db:"id"`
	Name            string        `db:"name"`
	ApartmentNumber string        `db:"apartment_number"`
	PasswordHash    []byte        `db:"password_hash"`
	IsManager       bool          `db:"is_manager"`
	CreatedAt       time.Time     `db:"created_at"`
	CompletionCount sql.NullInt64 `db:"completion_count"`
}

func (du *dbUser) toUser() *domain.User {
	return &domain.User{
		ID:              du.ID,
		Name:            du.Name,
		ApartmentNumber: du.ApartmentNumber,
		PasswordHash:    du.PasswordHash,
		IsManager:       du.IsManager,
		CreatedAt:       du.CreatedAt,
		CompletionCount: int(du.CompletionCount.Int64),
	}
}

// insert a new user; apartment numbers are unique
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	user.Name = strings.TrimSpace(user.Name)
	user.ApartmentNumber = strings.TrimSpace(user.ApartmentNumber)

	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	user.CreatedAt = utc(user.CreatedAt)

	query := `
		INSERT INTO users (name, apartment_number, password_hash, is_manager, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		user.Name,
		user.ApartmentNumber,
		user.PasswordHash,
		user.IsManager,
		user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("apartment %q already registered: %w", user.ApartmentNumber, domain.ErrConflict)
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}

	user.ID = id
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
}

func (r *UserRepository) GetByApartment(ctx context.Context, apartmentNumber string) (*domain.User, error) {
	return r.getOne(ctx, "SELECT "+userColumns+" FROM users WHERE apartment_number = ?", strings.TrimSpace(apartmentNumber))
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	var row dbUser
	if err := r.db.GetContext(ctx, &row, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %v: %w", arg, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return row.toUser(), nil
}

// newest first, with how many completions each user logged
func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	query := `
		SELECT u.id, u.name, u.apartment_number, u.password_hash, u.is_manager, u.created_at,
			COUNT(c.id) AS completion_count
		FROM users u
		LEFT JOIN task_completions c ON c.user_id = u.id
		GROUP BY u.id
		ORDER BY u.created_at DESC, u.id DESC
	`

	return r.selectUsers(ctx, query)
}

func (r *UserRepository) ListManagers(ctx context.Context) ([]*domain.User, error) {
	return r.selectUsers(ctx, "SELECT "+userColumns+" FROM users WHERE is_manager = 1 ORDER BY id")
}

func (r *UserRepository) HasManager(ctx context.Context) (bool, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM users WHERE is_manager = 1"); err != nil {
		return false, fmt.Errorf("failed to count managers: %w", err)
	}
	return count > 0, nil
}

func (r *UserRepository) selectUsers(ctx context.Context, query string, args ...interface{}) ([]*domain.User, error) {
	var rows []dbUser
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*domain.User, 0, len(rows))
	for i := range rows {
		users = append(users, rows[i].toUser())
	}

	return users, nil
}
