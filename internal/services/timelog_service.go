package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/project-dashboard-api/internal/models"
	"github.com/yukikurage/project-dashboard-api/internal/repository"
	"gorm.io/gorm"
)

// TimeLogService records and reports time spent on tasks
type TimeLogService struct {
	timeLogRepo repository.TimeLogRepository
	taskRepo    repository.TaskRepository
	userRepo    repository.UserRepository
	now         func() time.Time
}

// NewTimeLogService creates a new TimeLogService
func NewTimeLogService(timeLogRepo repository.TimeLogRepository, taskRepo repository.TaskRepository, userRepo repository.UserRepository) *TimeLogService {
	return &TimeLogService{
		timeLogRepo: timeLogRepo,
		taskRepo:    taskRepo,
		userRepo:    userRepo,
		now:         time.Now,
	}
}

// LogTimeInput represents input for logging time against a task
type LogTimeInput struct {
	Hours       float64
	Description string
	Date        *time.Time
}

// ListTimeLogsInput represents filters for listing time logs
type ListTimeLogsInput struct {
	TaskID *uint64
	UserID *uint64
	From   *time.Time
	To     *time.Time
	Skip   int
	Limit  int
}

// TimeLogSummary totals the hours a user logged in a period
type TimeLogSummary struct {
	UserID       uint64
	From         *time.Time
	To           *time.Time
	TotalHours   float64
	TotalEntries int64
	Tasks        []repository.TaskHours
}

// LogTime appends a time log for actor and adds its hours to the task. Any
// authenticated user may log time on any task.
func (s *TimeLogService) LogTime(ctx context.Context, actor *models.User, taskID uint64, input LogTimeInput) (*models.TimeLog, error) {
	if input.Hours <= 0 {
		return nil, NewValidationError("hours", "must be greater than 0")
	}

	if _, err := s.taskRepo.FindByID(ctx, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	date := s.now()
	if input.Date != nil {
		date = *input.Date
	}

	log := &models.TimeLog{
		TaskID:      taskID,
		UserID:      actor.ID,
		Hours:       input.Hours,
		Description: input.Description,
		Date:        date,
	}
	if err := s.timeLogRepo.CreateAndAddHours(ctx, log); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to record time log: %w", err)
	}
	log.User = *actor

	return log, nil
}

// ListTaskTimeLogs returns every time log of a task, newest first
func (s *TimeLogService) ListTaskTimeLogs(ctx context.Context, taskID uint64) ([]models.TimeLog, error) {
	if _, err := s.taskRepo.FindByID(ctx, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	logs, err := s.timeLogRepo.List(ctx, repository.TimeLogFilter{TaskID: &taskID})
	if err != nil {
		return nil, fmt.Errorf("failed to list time logs: %w", err)
	}
	return logs, nil
}

// ListTimeLogs returns time logs matching the filter
func (s *TimeLogService) ListTimeLogs(ctx context.Context, input ListTimeLogsInput) ([]models.TimeLog, error) {
	if err := checkPeriod(input.From, input.To); err != nil {
		return nil, err
	}

	logs, err := s.timeLogRepo.List(ctx, repository.TimeLogFilter{
		TaskID: input.TaskID,
		UserID: input.UserID,
		From:   input.From,
		To:     input.To,
		Skip:   input.Skip,
		Limit:  input.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list time logs: %w", err)
	}
	return logs, nil
}

// TimeLogSummary totals a user's logged hours per task within [from, to]
func (s *TimeLogService) TimeLogSummary(ctx context.Context, userID uint64, from, to *time.Time) (*TimeLogSummary, error) {
	if err := checkPeriod(from, to); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	rows, err := s.timeLogRepo.HoursByTask(ctx, repository.TimeLogFilter{
		UserID: &userID,
		From:   from,
		To:     to,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to summarise time logs: %w", err)
	}

	summary := &TimeLogSummary{
		UserID: userID,
		From:   from,
		To:     to,
		Tasks:  rows,
	}
	for _, row := range rows {
		summary.TotalHours += row.Hours
		summary.TotalEntries += row.Entries
	}
	return summary, nil
}

func checkPeriod(from, to *time.Time) error {
	if from != nil && to != nil && to.Before(*from) {
		return NewValidationError("end_date", "must not be before start_date")
	}
	return nil
}
