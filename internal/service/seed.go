package service

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"choreboard/internal/domain"
	"choreboard/internal/repository"
)

const (
	DefaultAdminName      = "Administrator"
	DefaultAdminApartment = "ADMIN"
	DefaultAdminPassword  = "admin123"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type seedFile struct {
	Tasks []seedTask `yaml:"tasks"`
}

type seedTask struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Frequency   string `yaml:"frequency"`
	Location    string `yaml:"location"`
	Image       string `yaml:"image"`
	Important   bool   `yaml:"important"`
}

// parses a task list in the defaults.yaml format
func ParseSeedTasks(data []byte) ([]TaskInput, error) {
	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse seed tasks: %w", err)
	}

	inputs := make([]TaskInput, 0, len(file.Tasks))
	for i, t := range file.Tasks {
		freq, err := domain.ParseFrequency(t.Frequency)
		if err != nil {
			return nil, fmt.Errorf("seed task %d: %w", i+1, err)
		}
		loc, err := domain.ParseLocation(t.Location)
		if err != nil {
			return nil, fmt.Errorf("seed task %d: %w", i+1, err)
		}

		inputs = append(inputs, TaskInput{
			Name:        t.Name,
			Description: t.Description,
			Location:    loc,
			Frequency:   freq,
			IsImportant: t.Important,
			ImageURL:    t.Image,
		})
	}

	return inputs, nil
}

// Seed makes a fresh database usable: a manager account when none exists and
// the default tasks when the board has never had any.
func Seed(ctx context.Context, repos repository.Repositories, users *UserService, tasks *TaskService, logger zerolog.Logger) error {
	hasManager, err := repos.Users.HasManager(ctx)
	if err != nil {
		return err
	}

	// task creation is manager only; seeding acts as one
	actor := &domain.User{Name: "seed", IsManager: true}

	if !hasManager {
		admin, err := users.CreateUser(ctx, DefaultAdminName, DefaultAdminApartment, DefaultAdminPassword, true)
		if err != nil {
			return fmt.Errorf("failed to create default manager: %w", err)
		}
		actor = admin
		logger.Warn().Str("apartment", DefaultAdminApartment).Msg("default manager created, change its password")
	}

	count, err := repos.Tasks.Count(ctx, repository.TaskFilter{IncludeInactive: true})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	inputs, err := ParseSeedTasks(defaultsYAML)
	if err != nil {
		return err
	}

	for _, in := range inputs {
		if _, err := tasks.CreateTask(ctx, actor, in); err != nil {
			return fmt.Errorf("failed to create default task %q: %w", in.Name, err)
		}
	}

	logger.Info().Int("tasks", len(inputs)).Msg("default tasks created")
	return nil
}
