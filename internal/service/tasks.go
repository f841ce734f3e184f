package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/WatchBeam/clock"
	"github.com/rs/zerolog"

	"choreboard/internal/domain"
	"choreboard/internal/repository"
)

// a task together with its derived due status
type TaskView struct {
	*domain.Task
	Status         domain.DueStatus
	LastCompletion *domain.Completion
}

// a task with its full completion history, newest first
type TaskDetail struct {
	TaskView
	History []*domain.Completion
}

type TaskQuery struct {
	Location  domain.Location
	Frequency domain.Frequency
	// nil lists every task, otherwise only tasks whose completed flag matches
	Completed *bool
	Search    string
}

// fields a manager supplies when creating or editing a task
type TaskInput struct {
	Name        string
	Description string
	Location    domain.Location
	Frequency   domain.Frequency
	IsImportant bool
	ImageURL    string
}

type CompletionInput struct {
	Image string
	Notes string
}

type TaskService struct {
	tasks         repository.TaskRepository
	completions   repository.CompletionRepository
	users         repository.UserRepository
	notifications repository.NotificationRepository
	evaluator     domain.Evaluator
	clock         clock.Clock
	logger        zerolog.Logger
}

func NewTaskService(repos repository.Repositories, evaluator domain.Evaluator, c clock.Clock, logger zerolog.Logger) *TaskService {
	if c == nil {
		c = clock.C
	}
	return &TaskService{
		tasks:         repos.Tasks,
		completions:   repos.Completions,
		users:         repos.Users,
		notifications: repos.Notifications,
		evaluator:     evaluator,
		clock:         c,
		logger:        logger,
	}
}

// active tasks with their status, important first then oldest first
func (s *TaskService) ListTasks(ctx context.Context, q TaskQuery) ([]*TaskView, error) {
	tasks, err := s.tasks.List(ctx, repository.TaskFilter{
		Location:    q.Location,
		Frequency:   q.Frequency,
		SearchQuery: strings.TrimSpace(q.Search),
	})
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}

	latest, err := s.completions.LatestForTasks(ctx, ids)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	views := make([]*TaskView, 0, len(tasks))
	for _, t := range tasks {
		view := s.view(t, latest[t.ID], now)
		if q.Completed != nil && view.Status.IsCompleted != *q.Completed {
			continue
		}
		views = append(views, view)
	}

	return views, nil
}

// a single active task with its history
func (s *TaskService) GetTask(ctx context.Context, id int64) (*TaskDetail, error) {
	task, err := s.activeTask(ctx, id)
	if err != nil {
		return nil, err
	}

	history, err := s.completions.ListByTask(ctx, id, 0)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	return &TaskDetail{
		TaskView: TaskView{
			Task:           task,
			Status:         s.evaluator.Derive(task, history, now),
			LastCompletion: domain.LatestCompletion(history),
		},
		History: history,
	}, nil
}

func (s *TaskService) CreateTask(ctx context.Context, actor *domain.User, in TaskInput) (*TaskView, error) {
	if err := requireManager(actor); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	task := domain.NewTask(strings.TrimSpace(in.Name), strings.TrimSpace(in.Description), in.Location, in.Frequency)
	task.IsImportant = in.IsImportant
	task.ImageURL = in.ImageURL
	task.CreatedAt = now
	task.UpdatedAt = now

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("task_id", task.ID).Str("name", task.Name).Int64("by", actor.ID).Msg("task created")
	return s.view(task, nil, now), nil
}

func (s *TaskService) UpdateTask(ctx context.Context, actor *domain.User, id int64, in TaskInput) (*TaskView, error) {
	if err := requireManager(actor); err != nil {
		return nil, err
	}

	task, err := s.activeTask(ctx, id)
	if err != nil {
		return nil, err
	}

	task.Name = strings.TrimSpace(in.Name)
	task.Description = strings.TrimSpace(in.Description)
	task.Location = in.Location
	task.Frequency = in.Frequency
	task.IsImportant = in.IsImportant
	task.ImageURL = in.ImageURL

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	latest, err := s.completions.Latest(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("task_id", id).Int64("by", actor.ID).Msg("task updated")
	return s.view(task, latest, s.clock.Now()), nil
}

// soft delete; the completion history stays
func (s *TaskService) DeleteTask(ctx context.Context, actor *domain.User, id int64) error {
	if err := requireManager(actor); err != nil {
		return err
	}

	if err := s.tasks.Deactivate(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("task_id", id).Int64("by", actor.ID).Msg("task deactivated")
	return nil
}

// returns the new important flag
func (s *TaskService) ToggleImportant(ctx context.Context, actor *domain.User, id int64) (bool, error) {
	if err := requireManager(actor); err != nil {
		return false, err
	}
	return s.tasks.ToggleImportant(ctx, id)
}

// records a completion by the actor and tells every manager about it
func (s *TaskService) CompleteTask(ctx context.Context, actor *domain.User, id int64, in CompletionInput) (*domain.Completion, error) {
	if err := requireUser(actor); err != nil {
		return nil, err
	}

	task, err := s.activeTask(ctx, id)
	if err != nil {
		return nil, err
	}

	completion := &domain.Completion{
		TaskID:          task.ID,
		UserID:          actor.ID,
		CompletedAt:     s.clock.Now(),
		CompletionImage: in.Image,
		Notes:           strings.TrimSpace(in.Notes),
		UserName:        actor.Name,
		UserApartment:   actor.ApartmentNumber,
		TaskName:        task.Name,
		TaskLocation:    task.Location,
	}

	if err := s.completions.Create(ctx, completion); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("task_id", task.ID).Int64("user_id", actor.ID).Msg("task completed")

	// the completion stands even if nobody hears about it
	if err := s.notifyManagers(ctx, task, actor); err != nil {
		s.logger.Warn().Err(err).Int64("task_id", task.ID).Msg("failed to notify managers")
	}

	return completion, nil
}

// counts of active tasks per urgency
func (s *TaskService) Summary(ctx context.Context) (*domain.BoardSummary, error) {
	views, err := s.ListTasks(ctx, TaskQuery{})
	if err != nil {
		return nil, err
	}

	summary := &domain.BoardSummary{}
	for _, v := range views {
		summary.Add(v.Task, v.Status)
	}
	return summary, nil
}

func (s *TaskService) notifyManagers(ctx context.Context, task *domain.Task, actor *domain.User) error {
	managers, err := s.users.ListManagers(ctx)
	if err != nil {
		return err
	}
	if len(managers) == 0 {
		return nil
	}

	completedBy := fmt.Sprintf("%s (apt. %s)", actor.Name, actor.ApartmentNumber)
	batch := make([]*domain.Notification, 0, len(managers))
	for _, m := range managers {
		n := domain.NewCompletedNotification(m.ID, task, completedBy)
		n.CreatedAt = s.clock.Now()
		batch = append(batch, n)
	}

	return s.notifications.CreateMany(ctx, batch)
}

func (s *TaskService) activeTask(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !task.IsActive {
		return nil, fmt.Errorf("task %d: %w", id, domain.ErrNotFound)
	}
	return task, nil
}

func (s *TaskService) view(task *domain.Task, latest *domain.Completion, now time.Time) *TaskView {
	var completions []*domain.Completion
	if latest != nil {
		completions = []*domain.Completion{latest}
	}
	return &TaskView{
		Task:           task,
		Status:         s.evaluator.Derive(task, completions, now),
		LastCompletion: latest,
	}
}
