package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/project-dashboard-api/internal/models"
	"github.com/yukikurage/project-dashboard-api/internal/notifications"
	"github.com/yukikurage/project-dashboard-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrTaskPermissionDenied = errors.New("you don't have permission to update this task")
	ErrTaskDeleteDenied     = errors.New("you don't have permission to delete this task")
	ErrAssigneeNotFound     = errors.New("assignee not found")
)

// Notifier accepts notifications without blocking the caller.
type Notifier interface {
	Notify(n notifications.Notification)
}

// TaskService handles task business logic
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	notifier    Notifier
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, userRepo repository.UserRepository, notifier Notifier) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	ProjectID  *uint64
	AssigneeID *uint64
	Status     *models.TaskStatus
	Skip       int
	Limit      int
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title          string
	Description    string
	Status         models.TaskStatus
	Priority       models.TaskPriority
	EstimatedHours *float64
	DueDate        *time.Time
	ProjectID      uint64
	AssigneeID     *uint64
}

// UpdateTaskInput carries the fields present in a partial update. Nullable
// columns use a Set flag so an explicit null can be told apart from absence.
type UpdateTaskInput struct {
	Title             *string
	Description       *string
	Status            *models.TaskStatus
	Priority          *models.TaskPriority
	EstimatedHours    *float64
	EstimatedHoursSet bool
	AssigneeID        *uint64
	AssigneeIDSet     bool
	DueDate           *time.Time
	DueDateSet        bool
}

// IsEmpty reports whether the update carries no fields at all.
func (in UpdateTaskInput) IsEmpty() bool {
	return in.Title == nil && in.Description == nil && in.Status == nil && in.Priority == nil &&
		!in.EstimatedHoursSet && !in.AssigneeIDSet && !in.DueDateSet
}

// ListTasks returns tasks matching the filter. Every task is visible to every
// authenticated user.
func (s *TaskService) ListTasks(ctx context.Context, input ListTasksInput) ([]models.Task, error) {
	if input.ProjectID != nil {
		if _, err := s.findProject(ctx, *input.ProjectID); err != nil {
			return nil, err
		}
	}

	filter := repository.TaskFilter{
		ProjectID:  input.ProjectID,
		AssigneeID: input.AssigneeID,
		Skip:       input.Skip,
		Limit:      input.Limit,
	}
	if input.Status != nil {
		status := input.Status.Normalize()
		if !status.Valid() {
			return nil, NewValidationError("status", "must be one of todo, in_progress, review, ready_to_test, in_test, closed")
		}
		filter.Status = &status
	}

	tasks, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// ListMyTasks returns the tasks assigned to actor
func (s *TaskService) ListMyTasks(ctx context.Context, actor *models.User, skip, limit int) ([]models.Task, error) {
	return s.ListTasks(ctx, ListTasksInput{AssigneeID: &actor.ID, Skip: skip, Limit: limit})
}

// GetTask returns a task with its assignee
func (s *TaskService) GetTask(ctx context.Context, taskID uint64) (*models.Task, error) {
	return s.findTask(ctx, taskID, "Assignee")
}

// CreateTask creates a task in any existing project. The assignee defaults to
// the creator; assigning someone else notifies them.
func (s *TaskService) CreateTask(ctx context.Context, actor *models.User, input CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)

	verr := &ValidationError{}
	if title == "" {
		verr.Add("title", "is required")
	}
	status := models.TaskStatusTodo
	if input.Status != "" {
		status = input.Status.Normalize()
		if !status.Valid() {
			verr.Add("status", "is not a valid task status")
		}
	}
	priority := models.TaskPriorityMedium
	if input.Priority != "" {
		priority = input.Priority
		if !priority.Valid() {
			verr.Add("priority", "must be one of low, medium, high")
		}
	}
	if input.EstimatedHours != nil && *input.EstimatedHours < 0 {
		verr.Add("estimated_hours", "must not be negative")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	project, err := s.findProject(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}

	assigneeID := actor.ID
	assignee := actor
	if input.AssigneeID != nil && *input.AssigneeID != 0 && *input.AssigneeID != actor.ID {
		assignee, err = s.findAssignee(ctx, *input.AssigneeID)
		if err != nil {
			return nil, err
		}
		assigneeID = assignee.ID
	}

	task := &models.Task{
		Title:          title,
		Description:    input.Description,
		Status:         status,
		Priority:       priority,
		EstimatedHours: input.EstimatedHours,
		ActualHours:    0,
		DueDate:        input.DueDate,
		ProjectID:      project.ID,
		AssigneeID:     &assigneeID,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	task.Assignee = assignee

	if assigneeID != actor.ID {
		s.notify(notifications.KindAssigned, assignee, task, project, actor)
	}

	return task, nil
}

// UpdateTask applies a partial update. Only the project owner or the current
// assignee may update a task.
func (s *TaskService) UpdateTask(ctx context.Context, actor *models.User, taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	project, err := s.projectRepo.FindByID(ctx, task.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if !CanUpdateTask(actor, project, task) {
		return nil, ErrTaskPermissionDenied
	}

	fields, err := s.taskUpdateFields(ctx, input)
	if err != nil {
		return nil, err
	}

	if err := s.taskRepo.UpdateFields(ctx, task.ID, fields); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	updated, err := s.findTask(ctx, task.ID, "Assignee")
	if err != nil {
		return nil, err
	}

	if kind, ok := ClassifyTaskUpdate(task, updated); ok {
		if updated.Assignee != nil && updated.Assignee.ID != actor.ID {
			s.notify(kind, updated.Assignee, updated, project, actor)
		}
	}

	return updated, nil
}

// DeleteTask deletes a task together with its comments. Only the project
// owner may delete.
func (s *TaskService) DeleteTask(ctx context.Context, actor *models.User, taskID uint64) error {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return err
	}

	project, err := s.projectRepo.FindByID(ctx, task.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}

	if !CanDeleteTask(actor, project) {
		return ErrTaskDeleteDenied
	}

	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// ClassifyTaskUpdate decides which notification, if any, an update warrants.
// A change of assignee takes precedence over a change of status.
func ClassifyTaskUpdate(before, after *models.Task) (notifications.Kind, bool) {
	if !sameAssignee(before.AssigneeID, after.AssigneeID) {
		if after.AssigneeID == nil {
			return "", false
		}
		if before.AssigneeID == nil {
			return notifications.KindAssigned, true
		}
		return notifications.KindReassigned, true
	}

	if before.Status.Normalize() != after.Status.Normalize() {
		if after.Status.IsTerminal() {
			return notifications.KindCompleted, true
		}
		return notifications.KindStatusChanged, true
	}

	return "", false
}

func sameAssignee(a, b *uint64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// taskUpdateFields validates the input and returns the columns to write.
func (s *TaskService) taskUpdateFields(ctx context.Context, input UpdateTaskInput) (map[string]interface{}, error) {
	fields := make(map[string]interface{})
	verr := &ValidationError{}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			verr.Add("title", "cannot be empty")
		}
		fields["title"] = title
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Status != nil {
		status := input.Status.Normalize()
		if !status.Valid() {
			verr.Add("status", "is not a valid task status")
		}
		fields["status"] = status
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			verr.Add("priority", "must be one of low, medium, high")
		}
		fields["priority"] = *input.Priority
	}
	if input.EstimatedHoursSet {
		if input.EstimatedHours != nil && *input.EstimatedHours < 0 {
			verr.Add("estimated_hours", "must not be negative")
		}
		fields["estimated_hours"] = input.EstimatedHours
	}
	if input.DueDateSet {
		fields["due_date"] = input.DueDate
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if input.AssigneeIDSet {
		if input.AssigneeID == nil || *input.AssigneeID == 0 {
			fields["assignee_id"] = nil
		} else {
			if _, err := s.findAssignee(ctx, *input.AssigneeID); err != nil {
				return nil, err
			}
			fields["assignee_id"] = *input.AssigneeID
		}
	}

	return fields, nil
}

func (s *TaskService) notify(kind notifications.Kind, recipient *models.User, task *models.Task, project *models.Project, actor *models.User) {
	if s.notifier == nil || recipient == nil || recipient.Email == "" {
		return
	}

	n := notifications.New(kind)
	n.RecipientEmail = recipient.Email
	n.RecipientName = recipient.DisplayName()
	n.TaskTitle = task.Title
	n.ProjectName = project.Title
	n.ActorName = actor.DisplayName()
	n.NewStatus = string(task.Status)

	s.notifier.Notify(n)
}

func (s *TaskService) findTask(ctx context.Context, id uint64, preload ...string) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id, preload...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

func (s *TaskService) findProject(ctx context.Context, id uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

func (s *TaskService) findAssignee(ctx context.Context, id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssigneeNotFound
		}
		return nil, fmt.Errorf("failed to find assignee: %w", err)
	}
	return user, nil
}
