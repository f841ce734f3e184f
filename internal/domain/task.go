package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// where a task is performed
type Location string

const (
	LocationBar         Location = "bar"
	LocationBackRoom    Location = "back_room"
	LocationOffice      Location = "office"
	LocationProduction  Location = "production"
	LocationHall        Location = "hall"
	LocationBathroom    Location = "bathroom"
	LocationDishStation Location = "dish_station"
	LocationOther       Location = "other"
)

var Locations = []Location{
	LocationBar,
	LocationBackRoom,
	LocationOffice,
	LocationProduction,
	LocationHall,
	LocationBathroom,
	LocationDishStation,
	LocationOther,
}

// a recurring cleaning chore
type Task struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Location    Location  `db:"location" json:"location"`
	Frequency   Frequency `db:"frequency" json:"frequency"`
	IsImportant bool      `db:"is_important" json:"is_important"`
	ImageURL    string    `db:"image_url" json:"image,omitempty"`
	IsActive    bool      `db:"is_active" json:"-"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

func (t *Task) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return errors.New("task name cannot be empty")
	}

	if len(t.Name) > 200 {
		return errors.New("task name cannot exceed 200 characters")
	}

	if strings.TrimSpace(t.Description) == "" {
		return errors.New("task description cannot be empty")
	}

	if len(t.Description) > 1000 {
		return errors.New("task description cannot exceed 1000 characters")
	}

	if !t.Frequency.IsValid() {
		return errors.New("invalid frequency: must be daily, every_2_days, weekly, biweekly, or monthly")
	}

	if !isValidLocation(t.Location) {
		return fmt.Errorf("invalid location: %q", t.Location)
	}

	return nil
}

// create a new active task
func NewTask(name, description string, location Location, frequency Frequency) *Task {
	now := time.Now()
	return &Task{
		Name:        name,
		Description: description,
		Location:    location,
		Frequency:   frequency,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func isValidLocation(l Location) bool {
	for _, known := range Locations {
		if l == known {
			return true
		}
	}
	return false
}

// parses a location code, accepting the first version's labels too
func ParseLocation(s string) (Location, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if isValidLocation(Location(key)) {
		return Location(key), nil
	}

	legacy := map[string]Location{
		"zaplecze":  LocationBackRoom,
		"biuro":     LocationOffice,
		"produkcja": LocationProduction,
		"sala":      LocationHall,
		"łazienka":  LocationBathroom,
		"zmywak":    LocationDishStation,
		"inne":      LocationOther,
	}
	if l, ok := legacy[key]; ok {
		return l, nil
	}

	return "", fmt.Errorf("invalid location: %q", s)
}

// an immutable record that a task was performed
type Completion struct {
	ID              int64     `db:"id" json:"id"`
	TaskID          int64     `db:"task_id" json:"task_id"`
	UserID          int64     `db:"user_id" json:"user_id"`
	CompletedAt     time.Time `db:"completed_at" json:"completed_at"`
	CompletionImage string    `db:"completion_image" json:"completion_image,omitempty"`
	Notes           string    `db:"notes" json:"notes,omitempty"`

	// joined for display
	UserName      string   `db:"-" json:"user_name,omitempty"`
	UserApartment string   `db:"-" json:"user_apartment,omitempty"`
	TaskName      string   `db:"-" json:"task_name,omitempty"`
	TaskLocation  Location `db:"-" json:"task_location,omitempty"`
}

func (c *Completion) Validate() error {
	if c.TaskID <= 0 {
		return errors.New("completion must reference a task")
	}
	if c.UserID <= 0 {
		return errors.New("completion must reference a user")
	}
	if c.CompletedAt.IsZero() {
		return errors.New("completion timestamp is required")
	}
	if len(c.Notes) > 1000 {
		return errors.New("completion notes cannot exceed 1000 characters")
	}
	return nil
}
