package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/yukikurage/project-dashboard-api/internal/models"
	"github.com/yukikurage/project-dashboard-api/internal/repository"
	"gorm.io/gorm"
)

// StatusCounts holds one counter per task status
type StatusCounts struct {
	Todo        int64
	InProgress  int64
	Review      int64
	ReadyToTest int64
	InTest      int64
	Closed      int64
}

// Total sums every bucket
func (c StatusCounts) Total() int64 {
	return c.Todo + c.InProgress + c.Review + c.ReadyToTest + c.InTest + c.Closed
}

func (c *StatusCounts) add(status models.TaskStatus, n int64) {
	switch status.Normalize() {
	case models.TaskStatusTodo:
		c.Todo += n
	case models.TaskStatusInProgress:
		c.InProgress += n
	case models.TaskStatusReview:
		c.Review += n
	case models.TaskStatusReadyToTest:
		c.ReadyToTest += n
	case models.TaskStatusInTest:
		c.InTest += n
	case models.TaskStatusClosed:
		c.Closed += n
	}
}

// ProjectSummary aggregates the tasks of one project
type ProjectSummary struct {
	ProjectID            uint64
	ProjectTitle         string
	Counts               StatusCounts
	TotalTasks           int64
	CompletionPercentage float64
	TotalEstimatedHours  float64
	TotalActualHours     float64
}

// UserTaskStats aggregates the tasks assigned to one user
type UserTaskStats struct {
	UserID     uint64
	Username   string
	Counts     StatusCounts
	TotalTasks int64
}

// StatsService computes dashboard aggregates
type StatsService struct {
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(projectRepo repository.ProjectRepository, taskRepo repository.TaskRepository) *StatsService {
	return &StatsService{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
	}
}

// ProjectSummary summarises a project owned by actor. A project owned by
// someone else is reported as not found.
func (s *StatsService) ProjectSummary(ctx context.Context, actor *models.User, projectID uint64) (*ProjectSummary, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	if !CanModifyProject(actor, project) {
		return nil, ErrProjectNotFound
	}

	rows, err := s.taskRepo.StatusBreakdown(ctx, repository.StatsFilter{ProjectID: &project.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate project tasks: %w", err)
	}

	summary := &ProjectSummary{
		ProjectID:    project.ID,
		ProjectTitle: project.Title,
	}
	for _, row := range rows {
		summary.Counts.add(row.Status, row.Count)
		summary.TotalEstimatedHours += row.EstimatedHours
		summary.TotalActualHours += row.ActualHours
	}
	summary.TotalTasks = summary.Counts.Total()
	summary.CompletionPercentage = CompletionPercentage(summary.Counts.Closed, summary.TotalTasks)

	return summary, nil
}

// UserTaskStats counts the tasks assigned to actor by status
func (s *StatsService) UserTaskStats(ctx context.Context, actor *models.User) (*UserTaskStats, error) {
	rows, err := s.taskRepo.StatusBreakdown(ctx, repository.StatsFilter{AssigneeID: &actor.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate user tasks: %w", err)
	}

	stats := &UserTaskStats{
		UserID:   actor.ID,
		Username: actor.Username,
	}
	for _, row := range rows {
		stats.Counts.add(row.Status, row.Count)
	}
	stats.TotalTasks = stats.Counts.Total()

	return stats, nil
}

// CompletionPercentage returns closed/total as a percentage rounded to two
// decimals, or 0 for an empty project.
func CompletionPercentage(closed, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(closed)/float64(total)*100*100) / 100
}
