package repository

import (
	"context"

	"github.com/yukikurage/workspace-task-api/internal/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLabelRepository is a GORM implementation of LabelRepository. T is one
// of models.Tag, models.Priority or models.Status.
type GormLabelRepository[T any] struct {
	db *gorm.DB
}

// NewLabelRepository creates a new LabelRepository for T
func NewLabelRepository[T any](db *gorm.DB) LabelRepository[T] {
	return &GormLabelRepository[T]{db: db}
}

// Create creates a new label
func (r *GormLabelRepository[T]) Create(ctx context.Context, item *T) error {
	return database.TranslateError(r.db.WithContext(ctx).Create(item).Error)
}

// FindByID finds a label of owner by ID
func (r *GormLabelRepository[T]) FindByID(ctx context.Context, owner string, id uint64) (*T, error) {
	var item T
	if err := r.db.WithContext(ctx).Scopes(database.OwnedBy(owner)).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindByIDs finds every label of owner among ids
func (r *GormLabelRepository[T]) FindByIDs(ctx context.Context, owner string, ids []uint64) ([]T, error) {
	var items []T
	if len(ids) == 0 {
		return items, nil
	}
	if err := r.db.WithContext(ctx).Scopes(database.OwnedBy(owner)).Where("id IN ?", ids).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// List retrieves labels of owner with pagination
func (r *GormLabelRepository[T]) List(ctx context.Context, owner string, filter ListFilter) ([]T, int64, error) {
	query := r.db.WithContext(ctx).Model(new(T)).Scopes(database.OwnedBy(owner))
	if filter.WorkspaceID != nil {
		query = query.Where("workspace_id = ?", *filter.WorkspaceID)
	}
	return listPage[T](query, filter)
}

// Update updates a label
func (r *GormLabelRepository[T]) Update(ctx context.Context, item *T) error {
	return database.TranslateError(r.db.WithContext(ctx).Omit(clause.Associations).Save(item).Error)
}

// Delete deletes a label by ID
func (r *GormLabelRepository[T]) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(new(T), id).Error
}
