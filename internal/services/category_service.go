package services

import (
	"context"
	"fmt"

	"github.com/yukikurage/workspace-task-api/internal/hierarchy"
	"github.com/yukikurage/workspace-task-api/internal/models"
	"github.com/yukikurage/workspace-task-api/internal/repository"
	"github.com/yukikurage/workspace-task-api/internal/utils"
)

// CategoryService handles category business logic
type CategoryService struct {
	store *repository.Store
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(store *repository.Store) *CategoryService {
	return &CategoryService{store: store}
}

// CategoryInput holds the writable category fields
type CategoryInput struct {
	Name        *string
	Description utils.Optional[string]
	WorkspaceID *uint64
	ParentID    utils.Optional[uint64]
}

func (in CategoryInput) apply(category *models.Category) error {
	if in.Name != nil {
		name, err := requireText("name", in.Name)
		if err != nil {
			return err
		}
		category.Name = name
	}
	in.Description.Apply(&category.Description)
	in.ParentID.Apply(&category.ParentID)
	return nil
}

// List returns the owner's categories matching filter
func (s *CategoryService) List(ctx context.Context, owner string, filter repository.ListFilter) ([]models.Category, int64, error) {
	categories, total, err := s.store.Categories.List(ctx, owner, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, total, nil
}

// Get returns one of the owner's categories
func (s *CategoryService) Get(ctx context.Context, owner string, id uint64) (*models.Category, error) {
	category, err := s.store.Categories.FindByID(ctx, owner, id)
	if err != nil {
		return nil, notFound(err, ErrCategoryNotFound)
	}
	return category, nil
}

// Create adds a category to one of the owner's workspaces
func (s *CategoryService) Create(ctx context.Context, owner string, in CategoryInput) (*models.Category, error) {
	if _, err := requireText("name", in.Name); err != nil {
		return nil, err
	}
	if in.WorkspaceID == nil {
		return nil, required("workspace")
	}

	category := &models.Category{}
	if err := in.apply(category); err != nil {
		return nil, err
	}

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		ws, err := resolveWorkspace(ctx, tx, owner, *in.WorkspaceID)
		if err != nil {
			return err
		}
		category.WorkspaceID = ws.ID

		if err := validateCategory(ctx, tx, owner, category); err != nil {
			return err
		}
		return tx.Categories.Create(ctx, category)
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

// Update changes a category, re-checking its place in the tree
func (s *CategoryService) Update(ctx context.Context, owner string, id uint64, in CategoryInput) (*models.Category, error) {
	var category *models.Category
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		category, err = tx.Categories.FindByID(ctx, owner, id)
		if err != nil {
			return notFound(err, ErrCategoryNotFound)
		}
		if err := in.apply(category); err != nil {
			return err
		}
		if in.WorkspaceID != nil {
			ws, err := resolveWorkspace(ctx, tx, owner, *in.WorkspaceID)
			if err != nil {
				return err
			}
			category.WorkspaceID = ws.ID
		}

		if err := validateCategory(ctx, tx, owner, category); err != nil {
			return err
		}
		return tx.Categories.Update(ctx, category)
	})
	if err != nil {
		return nil, updateError("update category", err)
	}
	return category, nil
}

// Delete removes a category. Child categories become roots; projects and
// tasks filed under it are deleted with it.
func (s *CategoryService) Delete(ctx context.Context, owner string, id uint64) error {
	return s.store.Transaction(ctx, func(tx *repository.Store) error {
		category, err := tx.Categories.FindByID(ctx, owner, id)
		if err != nil {
			return notFound(err, ErrCategoryNotFound)
		}
		return tx.Categories.Delete(ctx, category.ID)
	})
}

// Hierarchy returns the whole category tree the given category belongs to
func (s *CategoryService) Hierarchy(ctx context.Context, owner string, id uint64) (hierarchy.Branch[*models.Category], error) {
	category, err := s.Get(ctx, owner, id)
	if err != nil {
		return hierarchy.Branch[*models.Category]{}, err
	}
	return hierarchy.Hierarchy(ctx, s.store.Categories.Get, s.store.Categories.ListChildren, category)
}

// Tree arranges every category of a workspace into its trees
func (s *CategoryService) Tree(ctx context.Context, owner string, workspaceID uint64) (hierarchy.Tree[*models.Category], error) {
	if _, err := s.store.Workspaces.FindByID(ctx, owner, workspaceID); err != nil {
		return nil, notFound(err, ErrWorkspaceNotFound)
	}

	// a zero Pagination loads every row
	categories, _, err := s.store.Categories.List(ctx, owner, repository.ListFilter{WorkspaceID: &workspaceID})
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	nodes := make([]*models.Category, len(categories))
	for i := range categories {
		nodes[i] = &categories[i]
	}
	return hierarchy.Forest(nodes), nil
}

func validateCategory(ctx context.Context, tx *repository.Store, owner string, category *models.Category) error {
	if category.ParentID == nil {
		return nil
	}
	parent, err := resolve(ctx, tx.Categories.FindByID, owner, "parent", *category.ParentID)
	if err != nil {
		return err
	}
	if err := hierarchy.ValidateParent(category, parent); err != nil {
		return err
	}
	return hierarchy.ValidateAncestry(ctx, tx.Categories.Get, category, parent)
}
