package dto

import (
	"time"

	"github.com/yukikurage/project-dashboard-api/internal/models"
	"github.com/yukikurage/project-dashboard-api/internal/services"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID             uint64              `json:"id"`
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	Status         models.TaskStatus   `json:"status"`
	Priority       models.TaskPriority `json:"priority"`
	EstimatedHours *float64            `json:"estimated_hours"`
	ActualHours    float64             `json:"actual_hours"`
	DueDate        *time.Time          `json:"due_date"`
	ProjectID      uint64              `json:"project_id"`
	AssigneeID     *uint64             `json:"assignee_id"`
	Assignee       *UserSummaryDTO     `json:"assignee,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// CreateTaskRequest is the body of POST /tasks
type CreateTaskRequest struct {
	Title          string     `json:"title" binding:"required"`
	Description    string     `json:"description"`
	Status         string     `json:"status" binding:"omitempty,taskstatus"`
	Priority       string     `json:"priority" binding:"omitempty,taskpriority"`
	EstimatedHours *float64   `json:"estimated_hours" binding:"omitempty,gte=0"`
	DueDate        *time.Time `json:"due_date"`
	ProjectID      uint64     `json:"project_id" binding:"required"`
	AssigneeID     *uint64    `json:"assignee_id"`
}

// UpdateTaskRequest is the body of PUT /tasks/:id. Keys outside this set are
// ignored.
type UpdateTaskRequest struct {
	Title          *string    `json:"title"`
	Description    *string    `json:"description"`
	Status         *string    `json:"status"`
	Priority       *string    `json:"priority"`
	EstimatedHours *float64   `json:"estimated_hours"`
	AssigneeID     *uint64    `json:"assignee_id"`
	DueDate        *time.Time `json:"due_date"`
}

// UserTaskStatsDTO is the response of GET /tasks/my-tasks/stats
type UserTaskStatsDTO struct {
	UserID      uint64 `json:"user_id"`
	Username    string `json:"username"`
	TotalTasks  int64  `json:"total_tasks"`
	Todo        int64  `json:"todo"`
	InProgress  int64  `json:"in_progress"`
	Review      int64  `json:"review"`
	ReadyToTest int64  `json:"ready_to_test"`
	InTest      int64  `json:"in_test"`
	Closed      int64  `json:"closed"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:             task.ID,
		Title:          task.Title,
		Description:    task.Description,
		Status:         task.Status.Normalize(),
		Priority:       task.Priority,
		EstimatedHours: task.EstimatedHours,
		ActualHours:    task.ActualHours,
		DueDate:        task.DueDate,
		ProjectID:      task.ProjectID,
		AssigneeID:     task.AssigneeID,
		Assignee:       ToUserSummaryDTO(task.Assignee),
		CreatedAt:      task.CreatedAt,
		UpdatedAt:      task.UpdatedAt,
	}
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	out := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		out[i] = ToTaskDTO(t)
	}
	return out
}

// ToUserTaskStatsDTO flattens per-user task statistics
func ToUserTaskStatsDTO(s *services.UserTaskStats) UserTaskStatsDTO {
	return UserTaskStatsDTO{
		UserID:      s.UserID,
		Username:    s.Username,
		TotalTasks:  s.TotalTasks,
		Todo:        s.Counts.Todo,
		InProgress:  s.Counts.InProgress,
		Review:      s.Counts.Review,
		ReadyToTest: s.Counts.ReadyToTest,
		InTest:      s.Counts.InTest,
		Closed:      s.Counts.Closed,
	}
}
