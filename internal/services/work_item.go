package services

import (
	"context"

	"github.com/yukikurage/workspace-task-api/internal/hierarchy"
	"github.com/yukikurage/workspace-task-api/internal/models"
	"github.com/yukikurage/workspace-task-api/internal/repository"
)

// workItemRefs are the workspace-scoped references of a project or task
type workItemRefs struct {
	CategoryID uint64
	StatusID   *uint64
	PriorityID *uint64
	TagIDs     *[]uint64
}

// validateWorkItem resolves the category, status, priority and tags of node
// and requires all of them to live in node's workspace.
func validateWorkItem(ctx context.Context, tx *repository.Store, owner string, node hierarchy.WorkspaceScoped, refs workItemRefs) ([]models.Tag, error) {
	category, err := resolve(ctx, tx.Categories.FindByID, owner, "category", refs.CategoryID)
	if err != nil {
		return nil, err
	}
	scope := hierarchy.Scope{Category: &category.WorkspaceID}

	if refs.StatusID != nil {
		status, err := resolve(ctx, tx.Statuses.FindByID, owner, "status", *refs.StatusID)
		if err != nil {
			return nil, err
		}
		scope.Status = &status.WorkspaceID
	}
	if refs.PriorityID != nil {
		priority, err := resolve(ctx, tx.Priorities.FindByID, owner, "priority", *refs.PriorityID)
		if err != nil {
			return nil, err
		}
		scope.Priority = &priority.WorkspaceID
	}
	if err := hierarchy.ValidateScope(node, scope); err != nil {
		return nil, err
	}

	if refs.TagIDs == nil {
		return nil, nil
	}
	tags, err := resolveTags(ctx, tx, owner, *refs.TagIDs)
	if err != nil {
		return nil, err
	}
	if err := hierarchy.ValidateTagScope(node, tagWorkspaces(tags)); err != nil {
		return nil, err
	}
	return tags, nil
}
