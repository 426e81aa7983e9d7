package database

import (
	"gorm.io/gorm"

	"github.com/yukikurage/project-dashboard-api/internal/utils"
)

// Paginate applies skip/limit pagination to a GORM query. A non-positive
// limit leaves the query unbounded.
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if params.Limit <= 0 {
			return db
		}
		return db.Offset(params.Skip).Limit(params.Limit)
	}
}
