package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/project-dashboard-api/internal/models"
	"github.com/yukikurage/project-dashboard-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound         = errors.New("project not found")
	ErrProjectPermissionDenied = errors.New("only the project owner can perform this action")
)

// ProjectService handles project business logic
type ProjectService struct {
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository, taskRepo repository.TaskRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
	}
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	Title       string
	Description string
	Status      models.ProjectStatus
}

// UpdateProjectInput represents the fields present in a project update
type UpdateProjectInput struct {
	Title       *string
	Description *string
	Status      *models.ProjectStatus
}

// CreateProject creates a project owned by actor
func (s *ProjectService) CreateProject(ctx context.Context, actor *models.User, input CreateProjectInput) (*models.Project, error) {
	title := strings.TrimSpace(input.Title)

	verr := &ValidationError{}
	if title == "" {
		verr.Add("title", "is required")
	}
	status := models.ProjectStatusActive
	if input.Status != "" {
		status = input.Status
		if !status.Valid() {
			verr.Add("status", "must be one of active, on_hold, completed, cancelled")
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	project := &models.Project{
		Title:       title,
		Description: input.Description,
		Status:      status,
		OwnerID:     actor.ID,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	project.Owner = *actor

	return project, nil
}

// GetProject returns a project with its owner
func (s *ProjectService) GetProject(ctx context.Context, id uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// ListProjects returns every project, ordered by ID
func (s *ProjectService) ListProjects(ctx context.Context, skip, limit int) ([]models.Project, error) {
	projects, err := s.projectRepo.List(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// UpdateProject applies a partial update. Only the owner may update.
func (s *ProjectService) UpdateProject(ctx context.Context, actor *models.User, id uint64, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanModifyProject(actor, project) {
		return nil, ErrProjectPermissionDenied
	}

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
		if !input.Status.Valid() {
			verr.Add("status", "must be one of active, on_hold, completed, cancelled")
		}
		fields["status"] = *input.Status
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if err := s.projectRepo.UpdateFields(ctx, id, fields); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return s.GetProject(ctx, id)
}

// DeleteProject deletes a project with its tasks and comments. Only the owner
// may delete.
func (s *ProjectService) DeleteProject(ctx context.Context, actor *models.User, id uint64) error {
	project, err := s.GetProject(ctx, id)
	if err != nil {
		return err
	}
	if !CanModifyProject(actor, project) {
		return ErrProjectPermissionDenied
	}

	if err := s.projectRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

// ListProjectTasks returns the tasks of any existing project
func (s *ProjectService) ListProjectTasks(ctx context.Context, projectID uint64, skip, limit int) ([]models.Task, error) {
	if _, err := s.GetProject(ctx, projectID); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.List(ctx, repository.TaskFilter{
		ProjectID: &projectID,
		Skip:      skip,
		Limit:     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list project tasks: %w", err)
	}
	return tasks, nil
}
