package services

import (
	"context"
	"fmt"

	"github.com/yukikurage/workspace-task-api/internal/constants"
	apierrors "github.com/yukikurage/workspace-task-api/internal/errors"
	"github.com/yukikurage/workspace-task-api/internal/models"
	"github.com/yukikurage/workspace-task-api/internal/repository"
	"github.com/yukikurage/workspace-task-api/internal/utils"
)

// WorkspaceService manages workspaces and keeps exactly one default workspace
// per owner.
type WorkspaceService struct {
	store *repository.Store
}

// NewWorkspaceService creates a new WorkspaceService
func NewWorkspaceService(store *repository.Store) *WorkspaceService {
	return &WorkspaceService{store: store}
}

// WorkspaceInput holds the writable workspace fields. Nil fields are left
// untouched.
type WorkspaceInput struct {
	Name        *string
	Description *string
	IsDefault   *bool
}

func (in WorkspaceInput) apply(ws *models.Workspace) error {
	if in.Name != nil {
		name, err := requireText("name", in.Name)
		if err != nil {
			return err
		}
		ws.Name = name
	}
	if in.Description != nil {
		ws.Description = *in.Description
	}
	if in.IsDefault != nil {
		ws.IsDefault = *in.IsDefault
	}
	return nil
}

// List returns the owner's workspaces
func (s *WorkspaceService) List(ctx context.Context, owner string, params utils.PaginationParams) ([]models.Workspace, int64, error) {
	workspaces, total, err := s.store.Workspaces.List(ctx, owner, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list workspaces: %w", err)
	}
	return workspaces, total, nil
}

// Get returns one of the owner's workspaces
func (s *WorkspaceService) Get(ctx context.Context, owner string, id uint64) (*models.Workspace, error) {
	ws, err := s.store.Workspaces.FindByID(ctx, owner, id)
	if err != nil {
		return nil, notFound(err, ErrWorkspaceNotFound)
	}
	return ws, nil
}

// Create adds a workspace. The owner's first workspace always becomes the
// default one.
func (s *WorkspaceService) Create(ctx context.Context, owner string, in WorkspaceInput) (*models.Workspace, error) {
	var ws *models.Workspace
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		ws, err = CreateWorkspace(ctx, tx, owner, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ws, nil
}

// CreateWorkspace creates a workspace inside an already open transaction.
func CreateWorkspace(ctx context.Context, tx *repository.Store, owner string, in WorkspaceInput) (*models.Workspace, error) {
	ws := &models.Workspace{
		Name:      constants.DefaultWorkspaceName,
		CreatedBy: owner,
	}
	if err := in.apply(ws); err != nil {
		return nil, err
	}
	if err := saveWorkspace(ctx, tx, ws); err != nil {
		return nil, err
	}
	return ws, nil
}

// Update changes a workspace. Setting it as default demotes the previous
// default; clearing the flag on the only default is rejected.
func (s *WorkspaceService) Update(ctx context.Context, owner string, id uint64, in WorkspaceInput) (*models.Workspace, error) {
	var ws *models.Workspace
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		ws, err = tx.Workspaces.FindByID(ctx, owner, id)
		if err != nil {
			return notFound(err, ErrWorkspaceNotFound)
		}
		if err := in.apply(ws); err != nil {
			return err
		}
		return saveWorkspace(ctx, tx, ws)
	})
	if err != nil {
		return nil, updateError("update workspace", err)
	}
	return ws, nil
}

// Delete removes a workspace together with everything inside it. When the
// default goes, the oldest remaining workspace takes over.
func (s *WorkspaceService) Delete(ctx context.Context, owner string, id uint64) error {
	return s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Workspaces.LockOwner(ctx, owner); err != nil {
			return fmt.Errorf("failed to lock workspaces: %w", err)
		}
		ws, err := tx.Workspaces.FindByID(ctx, owner, id)
		if err != nil {
			return notFound(err, ErrWorkspaceNotFound)
		}
		if err := tx.Workspaces.Delete(ctx, ws.ID); err != nil {
			return fmt.Errorf("failed to delete workspace: %w", err)
		}
		if !ws.IsDefault {
			return nil
		}

		next, err := tx.Workspaces.Oldest(ctx, owner)
		if err != nil {
			return fmt.Errorf("failed to find next default workspace: %w", err)
		}
		if next == nil {
			return nil
		}
		return tx.Workspaces.SetDefault(ctx, next.ID, true)
	})
}

// saveWorkspace persists ws while holding the owner's workspace rows, so two
// concurrent saves cannot both leave or remove a default.
func saveWorkspace(ctx context.Context, tx *repository.Store, ws *models.Workspace) error {
	if err := tx.Workspaces.LockOwner(ctx, ws.CreatedBy); err != nil {
		return fmt.Errorf("failed to lock workspaces: %w", err)
	}

	other, err := tx.Workspaces.FindOtherDefault(ctx, ws.CreatedBy, ws.ID)
	if err != nil {
		return fmt.Errorf("failed to find default workspace: %w", err)
	}

	if ws.ID == 0 {
		if other == nil {
			ws.IsDefault = true
		}
	} else if !ws.IsDefault && other == nil {
		return apierrors.NewValidationError(MsgNoDefaultWorkspace)
	}

	if ws.IsDefault && other != nil {
		if err := tx.Workspaces.SetDefault(ctx, other.ID, false); err != nil {
			return fmt.Errorf("failed to demote workspace %d: %w", other.ID, err)
		}
	}

	if ws.ID == 0 {
		return tx.Workspaces.Create(ctx, ws)
	}
	return tx.Workspaces.Update(ctx, ws)
}
