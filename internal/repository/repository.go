package repository

import (
	"context"
	"time"

	"github.com/yukikurage/project-dashboard-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// List retrieves users ordered by ID
	List(ctx context.Context, skip, limit int) ([]models.User, error)

	// UpdateFields updates only the given columns of a user
	UpdateFields(ctx context.Context, id uint64, fields map[string]interface{}) error
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(ctx context.Context, project *models.Project) error

	// FindByID finds a project by ID
	FindByID(ctx context.Context, id uint64) (*models.Project, error)

	// List retrieves projects ordered by ID
	List(ctx context.Context, skip, limit int) ([]models.Project, error)

	// UpdateFields updates only the given columns of a project
	UpdateFields(ctx context.Context, id uint64, fields map[string]interface{}) error

	// Delete soft deletes a project together with its tasks and comments
	Delete(ctx context.Context, id uint64) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(ctx context.Context, id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(ctx context.Context, filter TaskFilter) ([]models.Task, error)

	// UpdateFields updates only the given columns of a task
	UpdateFields(ctx context.Context, id uint64, fields map[string]interface{}) error

	// Delete soft deletes a task and removes its comments
	Delete(ctx context.Context, id uint64) error

	// StatusBreakdown groups matching tasks by status with hour totals
	StatusBreakdown(ctx context.Context, filter StatsFilter) ([]StatusBreakdown, error)
}

// TimeLogRepository defines the interface for time log data access
type TimeLogRepository interface {
	// CreateAndAddHours inserts a time log and increments the task's actual hours
	// in a single transaction
	CreateAndAddHours(ctx context.Context, log *models.TimeLog) error

	// List retrieves time logs with filtering and pagination
	List(ctx context.Context, filter TimeLogFilter) ([]models.TimeLog, error)

	// HoursByTask sums a user's logged hours per task
	HoursByTask(ctx context.Context, filter TimeLogFilter) ([]TaskHours, error)
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	FindByID(ctx context.Context, id uint64) (*models.Comment, error)
	ListByTask(ctx context.Context, taskID uint64) ([]models.Comment, error)
	ListByProject(ctx context.Context, projectID uint64) ([]models.Comment, error)
	UpdateContent(ctx context.Context, id uint64, content string) error
	Delete(ctx context.Context, id uint64) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	ProjectID  *uint64
	AssigneeID *uint64
	Status     *models.TaskStatus
	Skip       int
	Limit      int
}

// StatsFilter scopes a status breakdown to a project or an assignee
type StatsFilter struct {
	ProjectID  *uint64
	AssigneeID *uint64
}

// StatusBreakdown is one row of a grouped task count
type StatusBreakdown struct {
	Status         models.TaskStatus
	Count          int64
	EstimatedHours float64
	ActualHours    float64
}

// TimeLogFilter holds filtering options for listing time logs
type TimeLogFilter struct {
	TaskID *uint64
	UserID *uint64
	From   *time.Time
	To     *time.Time
	Skip   int
	Limit  int
}

// TaskHours is the total logged by one user against one task
type TaskHours struct {
	TaskID  uint64
	Hours   float64
	Entries int64
}
