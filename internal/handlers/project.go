package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/workspace-task-api/internal/dto"
	apierrors "github.com/yukikurage/workspace-task-api/internal/errors"
	"github.com/yukikurage/workspace-task-api/internal/middleware"
	"github.com/yukikurage/workspace-task-api/internal/services"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// List returns projects, optionally narrowed by workspace or parent
func (h *ProjectHandler) List(c *gin.Context) {
	filter, ok := listFilter(c)
	if !ok {
		return
	}

	projects, total, err := h.projectService.List(c.Request.Context(), middleware.GetOwner(c), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects":   dto.ToProjectDTOs(projects),
		"pagination": filter.Pagination.Response(total),
	})
}

// Get returns a single project
func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	project, err := h.projectService.Get(c.Request.Context(), middleware.GetOwner(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectDTO(project))
}

// Create creates a project
func (h *ProjectHandler) Create(c *gin.Context) {
	var req workItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), middleware.GetOwner(c), services.ProjectInput{WorkItemInput: req.input()})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToProjectDTO(project))
}

// Update changes a project and cascades its visibility
func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req workItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.Update(c.Request.Context(), middleware.GetOwner(c), id, services.ProjectInput{WorkItemInput: req.input()})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectDTO(project))
}

// Delete deletes a project with its tasks
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.projectService.Delete(c.Request.Context(), middleware.GetOwner(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Hierarchy returns the full tree the project belongs to
func (h *ProjectHandler) Hierarchy(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	branch, err := h.projectService.Hierarchy(c.Request.Context(), middleware.GetOwner(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTreeDTO(branch, dto.ToProjectDTO))
}
