package repository

import (
	"github.com/yukikurage/workspace-task-api/internal/database"
	"gorm.io/gorm"
)

// applyListFilter narrows a workspace-scoped query to owner and the filter
func applyListFilter(query *gorm.DB, owner string, filter ListFilter) *gorm.DB {
	query = query.Scopes(database.OwnedBy(owner))
	if filter.WorkspaceID != nil {
		query = query.Where("workspace_id = ?", *filter.WorkspaceID)
	}
	if filter.ParentID != nil {
		query = query.Where("parent_id = ?", *filter.ParentID)
	} else if filter.RootsOnly {
		query = query.Where("parent_id IS NULL")
	}
	return query
}

// listPage counts the filtered rows and loads one page of them
func listPage[T any](query *gorm.DB, filter ListFilter, preload ...string) ([]T, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("id ASC")
	if filter.Pagination.Limit > 0 {
		listQuery = listQuery.Scopes(database.Paginate(filter.Pagination))
	}
	for _, p := range preload {
		listQuery = listQuery.Preload(p)
	}

	var items []T
	if err := listQuery.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
