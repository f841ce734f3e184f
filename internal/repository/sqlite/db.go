package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"choreboard/internal/repository"
)

type DB struct {
	*sqlx.DB
}

type Config struct {
	Path string
}

// creates a new db conn & runs migrations
func NewDB(cfg Config) (*DB, error) {
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// open SQLite connection
	db, err := sqlx.Open("sqlite3", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// enable foreign keys and WAL
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// pragmas are per connection
	db.SetMaxOpenConns(1)

	// run migrations
	if err := runMigrations(db.DB); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &DB{DB: db}, nil
}

// executes db schema
func runMigrations(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		apartment_number TEXT NOT NULL UNIQUE,
		password_hash BLOB NOT NULL,
		is_manager INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,

		CHECK(name != ''),
		CHECK(apartment_number != '')
	);

	CREATE TABLE IF NOT EXISTS tasks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		location TEXT NOT NULL,
		frequency TEXT NOT NULL,
		is_important INTEGER NOT NULL DEFAULT 0,
		image_url TEXT,
		is_active INTEGER NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,

		CHECK(name != ''),
		CHECK(length(name) <= 200),
		CHECK(length(description) <= 1000),
		CHECK(frequency IN ('daily', 'every_2_days', 'weekly', 'biweekly', 'monthly')),
		CHECK(location IN ('bar', 'back_room', 'office', 'production', 'hall', 'bathroom', 'dish_station', 'other'))
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_active ON tasks(is_active);
	CREATE INDEX IF NOT EXISTS idx_tasks_location ON tasks(location);

	-- append-only completion history
	CREATE TABLE IF NOT EXISTS task_completions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		task_id INTEGER NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		completed_at DATETIME NOT NULL,
		completion_image TEXT,
		notes TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_completions_task ON task_completions(task_id, completed_at DESC, id DESC);
	CREATE INDEX IF NOT EXISTS idx_completions_user ON task_completions(user_id, completed_at DESC);

	CREATE TABLE IF NOT EXISTS notifications (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER REFERENCES users(id) ON DELETE CASCADE,
		task_id INTEGER REFERENCES tasks(id) ON DELETE SET NULL,
		message TEXT NOT NULL,
		type TEXT NOT NULL,
		is_read INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,

		CHECK(type IN ('task_overdue', 'task_due', 'task_completed'))
	);

	CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(user_id, created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_notifications_task_type ON notifications(task_id, type, created_at);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

func (db *DB) Close() error {
	return db.DB.Close()
}

// wires every sqlite repository onto one connection
func NewRepositories(db *DB) repository.Repositories {
	return repository.Repositories{
		Tasks:         NewTaskRepository(db),
		Completions:   NewCompletionRepository(db),
		Users:         NewUserRepository(db),
		Notifications: NewNotificationRepository(db),
		Statistics:    NewStatisticsRepository(db),
	}
}
