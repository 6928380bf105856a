package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/workspace-task-api/internal/errors"
	"github.com/yukikurage/workspace-task-api/internal/middleware"
	"github.com/yukikurage/workspace-task-api/internal/models"
	"github.com/yukikurage/workspace-task-api/internal/services"
)

// LabelHandler serves tags, priorities and statuses. Labels are returned as
// stored.
type LabelHandler[T any, P services.LabelModel[T]] struct {
	service *services.LabelService[T, P]
	listKey string
}

func NewLabelHandler[T any, P services.LabelModel[T]](service *services.LabelService[T, P], listKey string) *LabelHandler[T, P] {
	return &LabelHandler[T, P]{service: service, listKey: listKey}
}

type labelRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=200"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	Order       *int16  `json:"order"`
	WorkspaceID *uint64 `json:"workspace"`
}

func (r labelRequest) input() services.LabelInput {
	return services.LabelInput{
		WorkspaceID: r.WorkspaceID,
		LabelFields: models.LabelFields{
			Name:        r.Name,
			Description: r.Description,
			Order:       r.Order,
		},
	}
}

// List returns labels, optionally narrowed by workspace
func (h *LabelHandler[T, P]) List(c *gin.Context) {
	filter, ok := listFilter(c)
	if !ok {
		return
	}

	items, total, err := h.service.List(c.Request.Context(), middleware.GetOwner(c), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		h.listKey:    items,
		"pagination": filter.Pagination.Response(total),
	})
}

// Get returns a single label
func (h *LabelHandler[T, P]) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	item, err := h.service.Get(c.Request.Context(), middleware.GetOwner(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Create creates a label
func (h *LabelHandler[T, P]) Create(c *gin.Context) {
	var req labelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.service.Create(c.Request.Context(), middleware.GetOwner(c), req.input())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Update changes a label
func (h *LabelHandler[T, P]) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req labelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.service.Update(c.Request.Context(), middleware.GetOwner(c), id, req.input())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Delete deletes a label
func (h *LabelHandler[T, P]) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.GetOwner(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
