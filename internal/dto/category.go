package dto

import (
	"time"

	"github.com/yukikurage/workspace-task-api/internal/hierarchy"
	"github.com/yukikurage/workspace-task-api/internal/models"
)

// CategoryDTO represents a category in API responses
type CategoryDTO struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	WorkspaceID uint64    `json:"workspace"`
	ParentID    *uint64   `json:"parent"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TreeNodeDTO is one node of a hierarchy response with its nested children
type TreeNodeDTO[D any] struct {
	Node     D                `json:"node"`
	Children []TreeNodeDTO[D] `json:"children"`
}

// ToTreeDTO converts a loaded branch with convert applied to every node
func ToTreeDTO[T hierarchy.Node, D any](branch hierarchy.Branch[T], convert func(T) D) TreeNodeDTO[D] {
	return TreeNodeDTO[D]{
		Node:     convert(branch.Node),
		Children: ToForestDTO(branch.Children, convert),
	}
}

// ToForestDTO converts every branch of tree
func ToForestDTO[T hierarchy.Node, D any](tree hierarchy.Tree[T], convert func(T) D) []TreeNodeDTO[D] {
	out := make([]TreeNodeDTO[D], len(tree))
	for i, b := range tree {
		out[i] = ToTreeDTO(b, convert)
	}
	return out
}

// ToCategoryDTO converts a Category model to CategoryDTO
func ToCategoryDTO(category *models.Category) CategoryDTO {
	return CategoryDTO{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		WorkspaceID: category.WorkspaceID,
		ParentID:    category.ParentID,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}

// ToCategoryDTOs converts a slice of categories
func ToCategoryDTOs(categories []models.Category) []CategoryDTO {
	out := make([]CategoryDTO, len(categories))
	for i := range categories {
		out[i] = ToCategoryDTO(&categories[i])
	}
	return out
}
