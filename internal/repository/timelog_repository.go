package repository

import (
	"context"

	"github.com/yukikurage/project-dashboard-api/internal/database"
	"github.com/yukikurage/project-dashboard-api/internal/models"
	"github.com/yukikurage/project-dashboard-api/internal/utils"
	"gorm.io/gorm"
)

// GormTimeLogRepository is a GORM implementation of TimeLogRepository
type GormTimeLogRepository struct {
	db *gorm.DB
}

// NewTimeLogRepository creates a new TimeLogRepository
func NewTimeLogRepository(db *gorm.DB) TimeLogRepository {
	return &GormTimeLogRepository{db: db}
}

// CreateAndAddHours inserts the log and bumps the parent task's actual_hours.
// Both writes commit together or not at all.
func (r *GormTimeLogRepository) CreateAndAddHours(ctx context.Context, log *models.TimeLog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Task", "User").Create(log).Error; err != nil {
			return err
		}

		result := tx.Model(&models.Task{}).
			Where("id = ?", log.TaskID).
			UpdateColumn("actual_hours", gorm.Expr("actual_hours + ?", log.Hours))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return nil
	})
}

// List retrieves time logs with filtering and pagination
func (r *GormTimeLogRepository) List(ctx context.Context, filter TimeLogFilter) ([]models.TimeLog, error) {
	var logs []models.TimeLog

	query := applyTimeLogFilter(r.db.WithContext(ctx).Model(&models.TimeLog{}), filter).
		Order("time_logs.date DESC, time_logs.id DESC").
		Scopes(database.Paginate(utils.PaginationParams{Skip: filter.Skip, Limit: filter.Limit}))

	if err := query.Preload("User").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// HoursByTask sums logged hours per task for the logs matching filter
func (r *GormTimeLogRepository) HoursByTask(ctx context.Context, filter TimeLogFilter) ([]TaskHours, error) {
	var rows []TaskHours

	query := applyTimeLogFilter(r.db.WithContext(ctx).Model(&models.TimeLog{}), filter).
		Select("task_id, COALESCE(SUM(hours), 0) AS hours, COUNT(*) AS entries").
		Group("task_id").
		Order("task_id")

	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func applyTimeLogFilter(query *gorm.DB, filter TimeLogFilter) *gorm.DB {
	if filter.TaskID != nil {
		query = query.Where("time_logs.task_id = ?", *filter.TaskID)
	}
	if filter.UserID != nil {
		query = query.Where("time_logs.user_id = ?", *filter.UserID)
	}
	if filter.From != nil {
		query = query.Where("time_logs.date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("time_logs.date < ?", *filter.To)
	}
	return query
}
