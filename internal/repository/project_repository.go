package repository

import (
	"context"

	"github.com/yukikurage/project-dashboard-api/internal/database"
	"github.com/yukikurage/project-dashboard-api/internal/models"
	"github.com/yukikurage/project-dashboard-api/internal/utils"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Omit("Owner", "Tasks").Create(project).Error
}

// FindByID finds a project by ID
func (r *GormProjectRepository) FindByID(ctx context.Context, id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).Preload("Owner").First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// List retrieves projects ordered by ID
func (r *GormProjectRepository) List(ctx context.Context, skip, limit int) ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.WithContext(ctx).
		Preload("Owner").
		Order("projects.id").
		Scopes(database.Paginate(utils.PaginationParams{Skip: skip, Limit: limit})).
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// UpdateFields updates only the given columns of a project
func (r *GormProjectRepository) UpdateFields(ctx context.Context, id uint64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", id).Updates(fields).Error
}

// Delete soft deletes a project and all related data in a transaction
func (r *GormProjectRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taskIDs := tx.Model(&models.Task{}).Select("id").Where("project_id = ?", id)

		// Delete comments on the project and on its tasks
		if err := tx.Where("project_id = ? OR task_id IN (?)", id, taskIDs).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		// Delete all tasks in the project
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Project{}, id).Error
	})
}
