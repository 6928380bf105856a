package repository

import (
	"context"

	"github.com/yukikurage/workspace-task-api/internal/database"
	"github.com/yukikurage/workspace-task-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project along with its tag links
func (r *GormProjectRepository) Create(ctx context.Context, project *models.Project) error {
	return database.TranslateError(r.db.WithContext(ctx).Omit("Tags.*").Create(project).Error)
}

// FindByID finds a project of owner by ID with its tags
func (r *GormProjectRepository) FindByID(ctx context.Context, owner string, id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).Scopes(database.OwnedBy(owner)).Preload("Tags").First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// List retrieves projects of owner with filtering and pagination
func (r *GormProjectRepository) List(ctx context.Context, owner string, filter ListFilter) ([]models.Project, int64, error) {
	query := applyListFilter(r.db.WithContext(ctx).Model(&models.Project{}), owner, filter)
	return listPage[models.Project](query, filter, "Tags")
}

// Update writes every column of a project; tag links are left alone
func (r *GormProjectRepository) Update(ctx context.Context, project *models.Project) error {
	return database.TranslateError(r.db.WithContext(ctx).Omit(clause.Associations).Save(project).Error)
}

// ReplaceTags replaces the tag links of a project
func (r *GormProjectRepository) ReplaceTags(ctx context.Context, project *models.Project, tags []models.Tag) error {
	assoc := r.db.WithContext(ctx).Model(project).Association("Tags")
	var err error
	if len(tags) == 0 {
		err = assoc.Clear()
	} else {
		err = assoc.Replace(tags)
	}
	if err != nil {
		return err
	}
	project.Tags = tags
	return nil
}

// Delete deletes a project; linked tasks go with it, child projects are detached
func (r *GormProjectRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Select("Tags").Delete(&models.Project{ID: id}).Error
}

// Get loads a project by ID without owner scoping
func (r *GormProjectRepository) Get(ctx context.Context, id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// ListChildren returns the direct children of a project
func (r *GormProjectRepository) ListChildren(ctx context.Context, parentID uint64) ([]*models.Project, error) {
	var children []*models.Project
	if err := r.db.WithContext(ctx).Where("parent_id = ?", parentID).Order("id ASC").Find(&children).Error; err != nil {
		return nil, err
	}
	return children, nil
}
