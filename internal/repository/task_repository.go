package repository

import (
	"context"

	"github.com/yukikurage/workspace-task-api/internal/database"
	"github.com/yukikurage/workspace-task-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task along with its tag links
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	return database.TranslateError(r.db.WithContext(ctx).Omit("Tags.*").Create(task).Error)
}

// FindByID finds a task of owner by ID with its tags
func (r *GormTaskRepository) FindByID(ctx context.Context, owner string, id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).Scopes(database.OwnedBy(owner)).Preload("Tags").First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves tasks of owner with filtering and pagination
func (r *GormTaskRepository) List(ctx context.Context, owner string, filter TaskFilter) ([]models.Task, int64, error) {
	query := applyListFilter(r.db.WithContext(ctx).Model(&models.Task{}), owner, filter.ListFilter)
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	return listPage[models.Task](query, filter.ListFilter, "Tags")
}

// Update writes every column of a task; tag links are left alone
func (r *GormTaskRepository) Update(ctx context.Context, task *models.Task) error {
	return database.TranslateError(r.db.WithContext(ctx).Omit(clause.Associations).Save(task).Error)
}

// ReplaceTags replaces the tag links of a task
func (r *GormTaskRepository) ReplaceTags(ctx context.Context, task *models.Task, tags []models.Tag) error {
	assoc := r.db.WithContext(ctx).Model(task).Association("Tags")
	var err error
	if len(tags) == 0 {
		err = assoc.Clear()
	} else {
		err = assoc.Replace(tags)
	}
	if err != nil {
		return err
	}
	task.Tags = tags
	return nil
}

// Delete deletes a task; children are detached by the database
func (r *GormTaskRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Select("Tags").Delete(&models.Task{ID: id}).Error
}

// Get loads a task by ID without owner scoping
func (r *GormTaskRepository) Get(ctx context.Context, id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListChildren returns the direct children of a task
func (r *GormTaskRepository) ListChildren(ctx context.Context, parentID uint64) ([]*models.Task, error) {
	var children []*models.Task
	if err := r.db.WithContext(ctx).Where("parent_id = ?", parentID).Order("id ASC").Find(&children).Error; err != nil {
		return nil, err
	}
	return children, nil
}

// ListByProject returns every task linked to a project
func (r *GormTaskRepository) ListByProject(ctx context.Context, projectID uint64) ([]*models.Task, error) {
	var tasks []*models.Task
	if err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}
