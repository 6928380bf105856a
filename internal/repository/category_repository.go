package repository

import (
	"context"

	"github.com/yukikurage/workspace-task-api/internal/database"
	"github.com/yukikurage/workspace-task-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCategoryRepository is a GORM implementation of CategoryRepository
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &GormCategoryRepository{db: db}
}

// Create creates a new category
func (r *GormCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	return database.TranslateError(r.db.WithContext(ctx).Create(category).Error)
}

// FindByID finds a category of owner by ID
func (r *GormCategoryRepository) FindByID(ctx context.Context, owner string, id uint64) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Scopes(database.OwnedBy(owner)).First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// List retrieves categories of owner with filtering and pagination
func (r *GormCategoryRepository) List(ctx context.Context, owner string, filter ListFilter) ([]models.Category, int64, error) {
	query := applyListFilter(r.db.WithContext(ctx).Model(&models.Category{}), owner, filter)
	return listPage[models.Category](query, filter)
}

// Update updates a category
func (r *GormCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	return database.TranslateError(r.db.WithContext(ctx).Omit(clause.Associations).Save(category).Error)
}

// Delete deletes a category; children are detached by the database
func (r *GormCategoryRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&models.Category{}, id).Error
}

// Get loads a category by ID without owner scoping
func (r *GormCategoryRepository) Get(ctx context.Context, id uint64) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// ListChildren returns the direct children of a category
func (r *GormCategoryRepository) ListChildren(ctx context.Context, parentID uint64) ([]*models.Category, error) {
	var children []*models.Category
	if err := r.db.WithContext(ctx).Where("parent_id = ?", parentID).Order("id ASC").Find(&children).Error; err != nil {
		return nil, err
	}
	return children, nil
}
