package database

import (
	"gorm.io/gorm"

	"github.com/yukikurage/workspace-task-api/internal/utils"
)

// Paginate applies pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// OwnedBy restricts a workspace-scoped table to rows whose workspace belongs
// to owner.
func OwnedBy(owner string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("workspace_id IN (SELECT id FROM workspaces WHERE created_by = ?)", owner)
	}
}
