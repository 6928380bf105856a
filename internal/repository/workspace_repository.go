package repository

import (
	"context"
	"errors"

	"github.com/yukikurage/workspace-task-api/internal/database"
	"github.com/yukikurage/workspace-task-api/internal/models"
	"github.com/yukikurage/workspace-task-api/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormWorkspaceRepository is a GORM implementation of WorkspaceRepository
type GormWorkspaceRepository struct {
	db *gorm.DB
}

// NewWorkspaceRepository creates a new WorkspaceRepository
func NewWorkspaceRepository(db *gorm.DB) WorkspaceRepository {
	return &GormWorkspaceRepository{db: db}
}

// Create creates a new workspace
func (r *GormWorkspaceRepository) Create(ctx context.Context, ws *models.Workspace) error {
	return database.TranslateError(r.db.WithContext(ctx).Create(ws).Error)
}

// FindByID finds a workspace of owner by ID
func (r *GormWorkspaceRepository) FindByID(ctx context.Context, owner string, id uint64) (*models.Workspace, error) {
	var ws models.Workspace
	if err := r.db.WithContext(ctx).Where("created_by = ?", owner).First(&ws, id).Error; err != nil {
		return nil, err
	}
	return &ws, nil
}

// List retrieves the workspaces of owner
func (r *GormWorkspaceRepository) List(ctx context.Context, owner string, params utils.PaginationParams) ([]models.Workspace, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Workspace{}).Where("created_by = ?", owner)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var workspaces []models.Workspace
	if err := query.Order("id ASC").Scopes(database.Paginate(params)).Find(&workspaces).Error; err != nil {
		return nil, 0, err
	}
	return workspaces, total, nil
}

// Update updates a workspace
func (r *GormWorkspaceRepository) Update(ctx context.Context, ws *models.Workspace) error {
	return database.TranslateError(r.db.WithContext(ctx).Omit(clause.Associations).Save(ws).Error)
}

// Delete deletes a workspace; the database cascades to everything inside it
func (r *GormWorkspaceRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&models.Workspace{}, id).Error
}

// LockOwner locks every workspace row of owner
func (r *GormWorkspaceRepository) LockOwner(ctx context.Context, owner string) error {
	var ids []uint64
	return r.db.WithContext(ctx).
		Model(&models.Workspace{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("created_by = ?", owner).
		Pluck("id", &ids).Error
}

// FindOtherDefault returns another default workspace of owner, if any
func (r *GormWorkspaceRepository) FindOtherDefault(ctx context.Context, owner string, excludeID uint64) (*models.Workspace, error) {
	var ws models.Workspace
	err := r.db.WithContext(ctx).
		Where("created_by = ? AND is_default = ? AND id <> ?", owner, true, excludeID).
		Order("id ASC").
		First(&ws).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ws, nil
}

// SetDefault updates only the default flag of a workspace
func (r *GormWorkspaceRepository) SetDefault(ctx context.Context, id uint64, isDefault bool) error {
	return r.db.WithContext(ctx).
		Model(&models.Workspace{}).
		Where("id = ?", id).
		Update("is_default", isDefault).Error
}

// Oldest returns the first created workspace of owner, if any
func (r *GormWorkspaceRepository) Oldest(ctx context.Context, owner string) (*models.Workspace, error) {
	var ws models.Workspace
	err := r.db.WithContext(ctx).Where("created_by = ?", owner).Order("created_at ASC, id ASC").First(&ws).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ws, nil
}
