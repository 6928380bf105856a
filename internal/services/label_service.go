package services

import (
	"context"
	"fmt"

	"github.com/yukikurage/workspace-task-api/internal/models"
	"github.com/yukikurage/workspace-task-api/internal/repository"
)

// LabelModel is satisfied by *models.Tag, *models.Priority and *models.Status
type LabelModel[T any] interface {
	*T
	LabelID() uint64
	SetLabelWorkspace(id uint64)
	ApplyLabel(fields models.LabelFields)
}

// LabelInput holds the writable fields of a tag, priority or status
type LabelInput struct {
	WorkspaceID *uint64
	models.LabelFields
}

// LabelService handles the workspace-scoped labels. The same logic serves
// tags, priorities and statuses.
type LabelService[T any, P LabelModel[T]] struct {
	store    *repository.Store
	repo     func(*repository.Store) repository.LabelRepository[T]
	kind     string
	notFound error
}

// NewTagService creates a LabelService for tags
func NewTagService(store *repository.Store) *LabelService[models.Tag, *models.Tag] {
	return &LabelService[models.Tag, *models.Tag]{
		store:    store,
		repo:     func(s *repository.Store) repository.LabelRepository[models.Tag] { return s.Tags },
		kind:     "tag",
		notFound: ErrTagNotFound,
	}
}

// NewPriorityService creates a LabelService for priorities
func NewPriorityService(store *repository.Store) *LabelService[models.Priority, *models.Priority] {
	return &LabelService[models.Priority, *models.Priority]{
		store:    store,
		repo:     func(s *repository.Store) repository.LabelRepository[models.Priority] { return s.Priorities },
		kind:     "priority",
		notFound: ErrPriorityNotFound,
	}
}

// NewStatusService creates a LabelService for statuses
func NewStatusService(store *repository.Store) *LabelService[models.Status, *models.Status] {
	return &LabelService[models.Status, *models.Status]{
		store:    store,
		repo:     func(s *repository.Store) repository.LabelRepository[models.Status] { return s.Statuses },
		kind:     "status",
		notFound: ErrStatusNotFound,
	}
}

// List returns the owner's labels matching filter
func (s *LabelService[T, P]) List(ctx context.Context, owner string, filter repository.ListFilter) ([]T, int64, error) {
	items, total, err := s.repo(s.store).List(ctx, owner, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list %s labels: %w", s.kind, err)
	}
	return items, total, nil
}

// Get returns one of the owner's labels
func (s *LabelService[T, P]) Get(ctx context.Context, owner string, id uint64) (*T, error) {
	item, err := s.repo(s.store).FindByID(ctx, owner, id)
	if err != nil {
		return nil, notFound(err, s.notFound)
	}
	return item, nil
}

// Create adds a label to one of the owner's workspaces
func (s *LabelService[T, P]) Create(ctx context.Context, owner string, in LabelInput) (*T, error) {
	if _, err := requireText("name", in.Name); err != nil {
		return nil, err
	}
	if in.WorkspaceID == nil {
		return nil, required("workspace")
	}

	item := new(T)
	P(item).ApplyLabel(in.LabelFields)

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		ws, err := resolveWorkspace(ctx, tx, owner, *in.WorkspaceID)
		if err != nil {
			return err
		}
		P(item).SetLabelWorkspace(ws.ID)
		return s.repo(tx).Create(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Update changes a label
func (s *LabelService[T, P]) Update(ctx context.Context, owner string, id uint64, in LabelInput) (*T, error) {
	if in.Name != nil {
		if _, err := requireText("name", in.Name); err != nil {
			return nil, err
		}
	}

	var item *T
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		item, err = s.repo(tx).FindByID(ctx, owner, id)
		if err != nil {
			return notFound(err, s.notFound)
		}
		P(item).ApplyLabel(in.LabelFields)
		if in.WorkspaceID != nil {
			ws, err := resolveWorkspace(ctx, tx, owner, *in.WorkspaceID)
			if err != nil {
				return err
			}
			P(item).SetLabelWorkspace(ws.ID)
		}
		return s.repo(tx).Update(ctx, item)
	})
	if err != nil {
		return nil, updateError("update "+s.kind, err)
	}
	return item, nil
}

// Delete removes a label. Removing a status deletes the projects and tasks
// in it; removing a priority or tag only detaches them.
func (s *LabelService[T, P]) Delete(ctx context.Context, owner string, id uint64) error {
	return s.store.Transaction(ctx, func(tx *repository.Store) error {
		item, err := s.repo(tx).FindByID(ctx, owner, id)
		if err != nil {
			return notFound(err, s.notFound)
		}
		return s.repo(tx).Delete(ctx, P(item).LabelID())
	})
}
