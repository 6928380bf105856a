// Package hierarchy keeps self-referencing trees (categories, projects, tasks)
// consistent: a node agrees with its parent on workspace, category and
// visibility, never points at itself, and never points at its own descendant.
package hierarchy

import (
	"context"

	apierrors "github.com/yukikurage/workspace-task-api/internal/errors"
)

const (
	MsgSelfParent         = "Parent cannot be object itself."
	MsgDescendantParent   = "Parent cannot be a descendant of object itself."
	MsgWorkspaceMismatch  = "Workspace should be same as parent's."
	MsgCategoryMismatch   = "Category should be same as parent's."
	MsgVisibilityMismatch = "Visibility should be same as of parent's."
	MsgScopeMismatch      = "Category, status and priority should be from same workspace as self."
	MsgTagScopeMismatch   = "Tags should be from same workspace as self."
)

// Node is anything with an identity and an optional parent. An unsaved node
// reports ID 0.
type Node interface {
	NodeID() uint64
	ParentNodeID() *uint64
}

// WorkspaceScoped nodes must share their parent's workspace.
type WorkspaceScoped interface {
	WorkspaceRef() uint64
}

// CategoryScoped nodes must share their parent's category.
type CategoryScoped interface {
	CategoryRef() uint64
}

// Visible nodes must share their parent's visibility.
type Visible interface {
	Visibility() bool
}

// ValidateParent checks node against parent. A nil parent marks a root and
// always passes. Only the first failing rule is reported.
func ValidateParent(node, parent Node) error {
	if parent == nil {
		return nil
	}

	if node.NodeID() != 0 && parent.NodeID() == node.NodeID() {
		return apierrors.NewValidationError(MsgSelfParent)
	}

	if ws, ok := node.(WorkspaceScoped); ok {
		pws, ok := parent.(WorkspaceScoped)
		if !ok || pws.WorkspaceRef() != ws.WorkspaceRef() {
			return apierrors.NewValidationError(MsgWorkspaceMismatch)
		}
	}

	if cat, ok := node.(CategoryScoped); ok {
		pcat, ok := parent.(CategoryScoped)
		if !ok || pcat.CategoryRef() != cat.CategoryRef() {
			return apierrors.NewValidationError(MsgCategoryMismatch)
		}
	}

	if vis, ok := node.(Visible); ok {
		pvis, ok := parent.(Visible)
		if !ok || pvis.Visibility() != vis.Visibility() {
			return apierrors.NewValidationError(MsgVisibilityMismatch)
		}
	}

	return nil
}

// ValidateAncestry rejects a parent that already sits below node in the tree.
// Unsaved nodes cannot have descendants and always pass.
func ValidateAncestry[T Node](ctx context.Context, loadParent ParentLoader[T], node T, parent T) error {
	if node.NodeID() == 0 {
		return nil
	}

	found, err := IsAncestor(ctx, loadParent, node.NodeID(), parent)
	if err != nil {
		return err
	}
	if found {
		return apierrors.NewValidationError(MsgDescendantParent)
	}
	return nil
}

// Scope lists the workspaces of the records a project or task references.
// Nil entries are unset references and are skipped.
type Scope struct {
	Category *uint64
	Status   *uint64
	Priority *uint64
}

// ValidateScope requires every referenced category, status and priority to
// live in the node's own workspace.
func ValidateScope(node WorkspaceScoped, scope Scope) error {
	for _, ws := range []*uint64{scope.Category, scope.Status, scope.Priority} {
		if ws != nil && *ws != node.WorkspaceRef() {
			return apierrors.NewValidationError(MsgScopeMismatch)
		}
	}
	return nil
}

// ValidateTagScope requires every tag workspace to match the node's workspace.
func ValidateTagScope(node WorkspaceScoped, tagWorkspaces []uint64) error {
	for _, ws := range tagWorkspaces {
		if ws != node.WorkspaceRef() {
			return apierrors.NewValidationError(MsgTagScopeMismatch)
		}
	}
	return nil
}
