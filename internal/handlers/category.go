package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/workspace-task-api/internal/dto"
	apierrors "github.com/yukikurage/workspace-task-api/internal/errors"
	"github.com/yukikurage/workspace-task-api/internal/middleware"
	"github.com/yukikurage/workspace-task-api/internal/services"
	"github.com/yukikurage/workspace-task-api/internal/utils"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
}

func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

type categoryRequest struct {
	Name        *string                `json:"name" binding:"omitempty,max=200"`
	Description utils.Optional[string] `json:"description"`
	WorkspaceID *uint64                `json:"workspace"`
	ParentID    utils.Optional[uint64] `json:"parent"`
}

func (r categoryRequest) input() services.CategoryInput {
	return services.CategoryInput{
		Name:        r.Name,
		Description: r.Description,
		WorkspaceID: r.WorkspaceID,
		ParentID:    r.ParentID,
	}
}

// List returns categories, optionally narrowed by workspace or parent
func (h *CategoryHandler) List(c *gin.Context) {
	filter, ok := listFilter(c)
	if !ok {
		return
	}

	categories, total, err := h.categoryService.List(c.Request.Context(), middleware.GetOwner(c), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": dto.ToCategoryDTOs(categories),
		"pagination": filter.Pagination.Response(total),
	})
}

// Get returns a single category
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	category, err := h.categoryService.Get(c.Request.Context(), middleware.GetOwner(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryDTO(category))
}

// Create creates a category
func (h *CategoryHandler) Create(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), middleware.GetOwner(c), req.input())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToCategoryDTO(category))
}

// Update changes a category
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), middleware.GetOwner(c), id, req.input())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryDTO(category))
}

// Delete deletes a category
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), middleware.GetOwner(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Hierarchy returns the full tree the category belongs to
func (h *CategoryHandler) Hierarchy(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	branch, err := h.categoryService.Hierarchy(c.Request.Context(), middleware.GetOwner(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTreeDTO(branch, dto.ToCategoryDTO))
}

// Tree returns every category tree of the workspace in the path
func (h *CategoryHandler) Tree(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	tree, err := h.categoryService.Tree(c.Request.Context(), middleware.GetOwner(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": dto.ToForestDTO(tree, dto.ToCategoryDTO)})
}
