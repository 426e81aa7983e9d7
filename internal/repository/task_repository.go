package repository

import (
	"context"

	"github.com/yukikurage/project-dashboard-api/internal/database"
	"github.com/yukikurage/project-dashboard-api/internal/models"
	"github.com/yukikurage/project-dashboard-api/internal/utils"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Omit("Project", "Assignee", "TimeLogs").Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(ctx context.Context, id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db.WithContext(ctx)

	// Apply preloading if specified
	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// List retrieves tasks with filtering and pagination
func (r *GormTaskRepository) List(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
	var tasks []models.Task

	query := r.db.WithContext(ctx).Model(&models.Task{})

	// Apply filters
	if filter.ProjectID != nil {
		query = query.Where("tasks.project_id = ?", *filter.ProjectID)
	}
	if filter.AssigneeID != nil {
		query = query.Where("tasks.assignee_id = ?", *filter.AssigneeID)
	}
	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}

	query = query.Order("tasks.id").
		Scopes(database.Paginate(utils.PaginationParams{Skip: filter.Skip, Limit: filter.Limit}))

	if err := query.Preload("Assignee").Find(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}

// UpdateFields updates only the given columns of a task
func (r *GormTaskRepository) UpdateFields(ctx context.Context, id uint64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.Task{}).Where("id = ?", id).Updates(fields).Error
}

// Delete soft deletes a task
func (r *GormTaskRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Task{}, id).Error
	})
}

// StatusBreakdown groups matching tasks by status with hour totals
func (r *GormTaskRepository) StatusBreakdown(ctx context.Context, filter StatsFilter) ([]StatusBreakdown, error) {
	var rows []StatusBreakdown

	query := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Select("status, COUNT(*) AS count, " +
			"COALESCE(SUM(estimated_hours), 0) AS estimated_hours, " +
			"COALESCE(SUM(actual_hours), 0) AS actual_hours")

	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.AssigneeID != nil {
		query = query.Where("assignee_id = ?", *filter.AssigneeID)
	}

	if err := query.Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}
