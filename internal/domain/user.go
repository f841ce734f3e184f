package domain

import (
	"errors"
	"strings"
	"time"
)

const MinPasswordLength = 6

// a resident or manager of the shared space
type User struct {
	ID              int64     `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	ApartmentNumber string    `db:"apartment_number" json:"apartment_number"`
	PasswordHash    []byte    `db:"password_hash" json:"-"`
	IsManager       bool      `db:"is_manager" json:"is_manager"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`

	CompletionCount int `db:"-" json:"completion_count,omitempty"`
}

func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return errors.New("user name cannot be empty")
	}

	if len(u.Name) > 100 {
		return errors.New("user name cannot exceed 100 characters")
	}

	if strings.TrimSpace(u.ApartmentNumber) == "" {
		return errors.New("apartment number cannot be empty")
	}

	if len(u.ApartmentNumber) > 20 {
		return errors.New("apartment number cannot exceed 20 characters")
	}

	if len(u.PasswordHash) == 0 {
		return errors.New("password hash is required")
	}

	return nil
}

func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return errors.New("password must be at least 6 characters")
	}
	return nil
}
