package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	task := NewTask("Wipe the bar", "Wipe and disinfect the counter", LocationBar, FrequencyDaily)

	assert.Equal(t, "Wipe the bar", task.Name)
	assert.Equal(t, LocationBar, task.Location)
	assert.Equal(t, FrequencyDaily, task.Frequency)
	assert.True(t, task.IsActive)
	assert.False(t, task.IsImportant)
	assert.False(t, task.CreatedAt.IsZero())
	assert.False(t, task.UpdatedAt.IsZero())
	assert.NoError(t, task.Validate())
}

func TestTaskValidate(t *testing.T) {
	valid := func() *Task {
		return &Task{
			Name:        "Clean bathroom",
			Description: "Toilets, sinks, mirrors",
			Location:    LocationBathroom,
			Frequency:   FrequencyDaily,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Task)
		wantErr bool
		errMsg  string
	}{
		{
			name:   "valid task",
			mutate: func(*Task) {},
		},
		{
			name:    "empty name",
			mutate:  func(t *Task) { t.Name = "" },
			wantErr: true,
			errMsg:  "task name cannot be empty",
		},
		{
			name:    "whitespace only name",
			mutate:  func(t *Task) { t.Name = "   " },
			wantErr: true,
			errMsg:  "task name cannot be empty",
		},
		{
			name:    "name too long",
			mutate:  func(t *Task) { t.Name = strings.Repeat("a", 201) },
			wantErr: true,
			errMsg:  "task name cannot exceed 200 characters",
		},
		{
			name:    "empty description",
			mutate:  func(t *Task) { t.Description = " " },
			wantErr: true,
			errMsg:  "task description cannot be empty",
		},
		{
			name:    "description too long",
			mutate:  func(t *Task) { t.Description = strings.Repeat("a", 1001) },
			wantErr: true,
			errMsg:  "task description cannot exceed 1000 characters",
		},
		{
			name:    "missing frequency",
			mutate:  func(t *Task) { t.Frequency = 0 },
			wantErr: true,
			errMsg:  "invalid frequency",
		},
		{
			name:    "invalid location",
			mutate:  func(t *Task) { t.Location = "roof" },
			wantErr: true,
			errMsg:  "invalid location",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := valid()
			tt.mutate(task)

			err := task.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseLocation(t *testing.T) {
	tests := []struct {
		input   string
		want    Location
		wantErr bool
	}{
		{"bar", LocationBar, false},
		{"Dish_Station", LocationDishStation, false},
		{"Zaplecze", LocationBackRoom, false},
		{"Łazienka", LocationBathroom, false},
		{"Zmywak", LocationDishStation, false},
		{"roof", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLocation(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompletionValidate(t *testing.T) {
	c := &Completion{TaskID: 1, UserID: 2, CompletedAt: time.Now()}
	assert.NoError(t, c.Validate())

	assert.Error(t, (&Completion{UserID: 2, CompletedAt: time.Now()}).Validate())
	assert.Error(t, (&Completion{TaskID: 1, CompletedAt: time.Now()}).Validate())
	assert.Error(t, (&Completion{TaskID: 1, UserID: 2}).Validate())

	c.Notes = strings.Repeat("n", 1001)
	assert.Error(t, c.Validate())
}

func TestUserValidate(t *testing.T) {
	u := &User{Name: "Anna", ApartmentNumber: "12", PasswordHash: []byte("hash")}
	assert.NoError(t, u.Validate())

	u.ApartmentNumber = " "
	assert.ErrorContains(t, u.Validate(), "apartment number cannot be empty")

	u.ApartmentNumber = "12"
	u.Name = ""
	assert.ErrorContains(t, u.Validate(), "user name cannot be empty")

	u.Name = "Anna"
	u.PasswordHash = nil
	assert.ErrorContains(t, u.Validate(), "password hash is required")

	assert.Error(t, ValidatePassword("12345"))
	assert.NoError(t, ValidatePassword("123456"))
}

func TestNotificationConstructors(t *testing.T) {
	task := &Task{ID: 5, Name: "Mop the hall"}

	n := NewOverdueNotification(3, task, 50*time.Hour)
	assert.Equal(t, NotificationTaskOverdue, n.Type)
	assert.Equal(t, int64(3), *n.UserID)
	assert.Equal(t, int64(5), *n.TaskID)
	assert.Contains(t, n.Message, "overdue by 2 days")

	n = NewDueNotification(3, task)
	assert.Equal(t, NotificationTaskDue, n.Type)
	assert.Contains(t, n.Message, "Mop the hall")

	n = NewCompletedNotification(9, task, "Anna")
	assert.Equal(t, NotificationTaskCompleted, n.Type)
	assert.Contains(t, n.Message, "completed by Anna")
}
