package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/workspace-task-api/internal/models"
	"github.com/yukikurage/workspace-task-api/internal/utils"
	"gorm.io/gorm"
)

// ListFilter holds filtering options shared by the list endpoints
type ListFilter struct {
	WorkspaceID *uint64
	ParentID    *uint64
	RootsOnly   bool
	Pagination  utils.PaginationParams
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

// WorkspaceRepository defines the interface for workspace data access.
// Lookups are restricted to the given owner.
type WorkspaceRepository interface {
	Create(ctx context.Context, ws *models.Workspace) error
	FindByID(ctx context.Context, owner string, id uint64) (*models.Workspace, error)
	List(ctx context.Context, owner string, params utils.PaginationParams) ([]models.Workspace, int64, error)
	Update(ctx context.Context, ws *models.Workspace) error
	Delete(ctx context.Context, id uint64) error

	// LockOwner takes row locks on every workspace of owner for the rest of
	// the transaction. It is a no-op on SQLite.
	LockOwner(ctx context.Context, owner string) error

	// FindOtherDefault returns a default workspace of owner other than
	// excludeID, or nil when there is none.
	FindOtherDefault(ctx context.Context, owner string, excludeID uint64) (*models.Workspace, error)

	// SetDefault writes only the is_default flag.
	SetDefault(ctx context.Context, id uint64, isDefault bool) error

	// Oldest returns the earliest created workspace of owner, or nil.
	Oldest(ctx context.Context, owner string) (*models.Workspace, error)
}

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	FindByID(ctx context.Context, owner string, id uint64) (*models.Category, error)
	List(ctx context.Context, owner string, filter ListFilter) ([]models.Category, int64, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uint64) error

	// Get loads a category without owner scoping, for tree walks.
	Get(ctx context.Context, id uint64) (*models.Category, error)
	ListChildren(ctx context.Context, parentID uint64) ([]*models.Category, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	FindByID(ctx context.Context, owner string, id uint64) (*models.Project, error)
	List(ctx context.Context, owner string, filter ListFilter) ([]models.Project, int64, error)
	Update(ctx context.Context, project *models.Project) error
	ReplaceTags(ctx context.Context, project *models.Project, tags []models.Tag) error
	Delete(ctx context.Context, id uint64) error

	Get(ctx context.Context, id uint64) (*models.Project, error)
	ListChildren(ctx context.Context, parentID uint64) ([]*models.Project, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, owner string, id uint64) (*models.Task, error)
	List(ctx context.Context, owner string, filter TaskFilter) ([]models.Task, int64, error)
	Update(ctx context.Context, task *models.Task) error
	ReplaceTags(ctx context.Context, task *models.Task, tags []models.Tag) error
	Delete(ctx context.Context, id uint64) error

	Get(ctx context.Context, id uint64) (*models.Task, error)
	ListChildren(ctx context.Context, parentID uint64) ([]*models.Task, error)

	// ListByProject returns every task linked to the project, regardless of
	// tree depth.
	ListByProject(ctx context.Context, projectID uint64) ([]*models.Task, error)
}

// TaskFilter extends ListFilter with task-only filters
type TaskFilter struct {
	ListFilter
	ProjectID *uint64
}

// LabelRepository defines data access for the simple workspace-scoped
// entities: tags, priorities and statuses.
type LabelRepository[T any] interface {
	Create(ctx context.Context, item *T) error
	FindByID(ctx context.Context, owner string, id uint64) (*T, error)
	FindByIDs(ctx context.Context, owner string, ids []uint64) ([]T, error)
	List(ctx context.Context, owner string, filter ListFilter) ([]T, int64, error)
	Update(ctx context.Context, item *T) error
	Delete(ctx context.Context, id uint64) error
}

// Store bundles every repository over one database handle. Repositories from
// a Store handed out by Transaction all share that transaction.
type Store struct {
	db *gorm.DB

	Users      UserRepository
	Workspaces WorkspaceRepository
	Categories CategoryRepository
	Projects   ProjectRepository
	Tasks      TaskRepository
	Tags       LabelRepository[models.Tag]
	Priorities LabelRepository[models.Priority]
	Statuses   LabelRepository[models.Status]
}

// NewStore creates a Store backed by db
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:         db,
		Users:      NewUserRepository(db),
		Workspaces: NewWorkspaceRepository(db),
		Categories: NewCategoryRepository(db),
		Projects:   NewProjectRepository(db),
		Tasks:      NewTaskRepository(db),
		Tags:       NewLabelRepository[models.Tag](db),
		Priorities: NewLabelRepository[models.Priority](db),
		Statuses:   NewLabelRepository[models.Status](db),
	}
}

// Transaction runs fn inside a database transaction. Returning an error from
// fn rolls back every write made through the Store it receives.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// ErrSavePoint reports that a savepoint could not be set or rolled back to.
// The surrounding transaction should be abandoned.
var ErrSavePoint = errors.New("savepoint failed")

// SavePoint runs fn behind a savepoint of the current transaction. When fn
// fails only its own writes are undone, and its error is returned as is. It
// must be called on a Store handed out by Transaction.
func (s *Store) SavePoint(ctx context.Context, name string, fn func() error) error {
	db := s.db.WithContext(ctx)
	if err := db.SavePoint(name).Error; err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSavePoint, name, err)
	}
	if err := fn(); err != nil {
		if rbErr := db.RollbackTo(name).Error; rbErr != nil {
			return fmt.Errorf("%w: %s: %v", ErrSavePoint, name, rbErr)
		}
		return err
	}
	return nil
}
