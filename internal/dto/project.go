package dto

import (
	"time"

	"github.com/yukikurage/project-dashboard-api/internal/models"
	"github.com/yukikurage/project-dashboard-api/internal/services"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          uint64               `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Status      models.ProjectStatus `json:"status"`
	OwnerID     uint64               `json:"owner_id"`
	Owner       *UserSummaryDTO      `json:"owner,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// CreateProjectRequest is the body of POST /projects
type CreateProjectRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status" binding:"omitempty,projectstatus"`
}

// UpdateProjectRequest is the body of PUT /projects/:id
type UpdateProjectRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// ProjectSummaryDTO is the response of GET /projects/:id/summary
type ProjectSummaryDTO struct {
	ProjectID            uint64  `json:"project_id"`
	ProjectTitle         string  `json:"project_title"`
	TotalTasks           int64   `json:"total_tasks"`
	TodoTasks            int64   `json:"todo_tasks"`
	InProgressTasks      int64   `json:"in_progress_tasks"`
	ReviewTasks          int64   `json:"review_tasks"`
	ReadyToTestTasks     int64   `json:"ready_to_test_tasks"`
	InTestTasks          int64   `json:"in_test_tasks"`
	ClosedTasks          int64   `json:"closed_tasks"`
	CompletionPercentage float64 `json:"completion_percentage"`
	TotalEstimatedHours  float64 `json:"total_estimated_hours"`
	TotalActualHours     float64 `json:"total_actual_hours"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	return ProjectDTO{
		ID:          project.ID,
		Title:       project.Title,
		Description: project.Description,
		Status:      project.Status,
		OwnerID:     project.OwnerID,
		Owner:       ToUserSummaryDTO(&project.Owner),
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}

// ToProjectDTOs converts a slice of projects
func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	out := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		out[i] = ToProjectDTO(p)
	}
	return out
}

// ToProjectSummaryDTO flattens a project summary
func ToProjectSummaryDTO(s *services.ProjectSummary) ProjectSummaryDTO {
	return ProjectSummaryDTO{
		ProjectID:            s.ProjectID,
		ProjectTitle:         s.ProjectTitle,
		TotalTasks:           s.TotalTasks,
		TodoTasks:            s.Counts.Todo,
		InProgressTasks:      s.Counts.InProgress,
		ReviewTasks:          s.Counts.Review,
		ReadyToTestTasks:     s.Counts.ReadyToTest,
		InTestTasks:          s.Counts.InTest,
		ClosedTasks:          s.Counts.Closed,
		CompletionPercentage: s.CompletionPercentage,
		TotalEstimatedHours:  s.TotalEstimatedHours,
		TotalActualHours:     s.TotalActualHours,
	}
}
