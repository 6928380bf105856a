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

type WorkspaceHandler struct {
	workspaceService *services.WorkspaceService
}

func NewWorkspaceHandler(workspaceService *services.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceService: workspaceService}
}

type workspaceRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=200"`
	Description *string `json:"description"`
	IsDefault   *bool   `json:"is_default"`
}

func (r workspaceRequest) input() services.WorkspaceInput {
	return services.WorkspaceInput{
		Name:        r.Name,
		Description: r.Description,
		IsDefault:   r.IsDefault,
	}
}

// List returns the workspaces of the user in the path
func (h *WorkspaceHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	workspaces, total, err := h.workspaceService.List(c.Request.Context(), middleware.GetOwner(c), params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"workspaces": dto.ToWorkspaceDTOs(workspaces),
		"pagination": params.Response(total),
	})
}

// Get returns a single workspace
func (h *WorkspaceHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	ws, err := h.workspaceService.Get(c.Request.Context(), middleware.GetOwner(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToWorkspaceDTO(*ws))
}

// Create creates a workspace
func (h *WorkspaceHandler) Create(c *gin.Context) {
	var req workspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	ws, err := h.workspaceService.Create(c.Request.Context(), middleware.GetOwner(c), req.input())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToWorkspaceDTO(*ws))
}

// Update changes a workspace. PUT and PATCH both only touch the fields sent.
func (h *WorkspaceHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req workspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	ws, err := h.workspaceService.Update(c.Request.Context(), middleware.GetOwner(c), id, req.input())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToWorkspaceDTO(*ws))
}

// Delete deletes a workspace and everything in it
func (h *WorkspaceHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.workspaceService.Delete(c.Request.Context(), middleware.GetOwner(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
