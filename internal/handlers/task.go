package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/workspace-task-api/internal/dto"
	apierrors "github.com/yukikurage/workspace-task-api/internal/errors"
	"github.com/yukikurage/workspace-task-api/internal/middleware"
	"github.com/yukikurage/workspace-task-api/internal/repository"
	"github.com/yukikurage/workspace-task-api/internal/services"
	"github.com/yukikurage/workspace-task-api/internal/utils"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

type taskRequest struct {
	workItemRequest
	ProjectID utils.Optional[uint64] `json:"project"`
}

func (r taskRequest) input() services.TaskInput {
	return services.TaskInput{
		WorkItemInput: r.workItemRequest.input(),
		ProjectID:     r.ProjectID,
	}
}

// List returns tasks, optionally narrowed by workspace, parent or project
func (h *TaskHandler) List(c *gin.Context) {
	base, ok := listFilter(c)
	if !ok {
		return
	}
	filter := repository.TaskFilter{ListFilter: base}
	if filter.ProjectID, ok = queryID(c, "project"); !ok {
		return
	}

	tasks, total, err := h.taskService.List(c.Request.Context(), middleware.GetOwner(c), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks":      dto.ToTaskDTOs(tasks),
		"pagination": base.Pagination.Response(total),
	})
}

// Get returns a single task
func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	task, err := h.taskService.Get(c.Request.Context(), middleware.GetOwner(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskDTO(task))
}

// Create creates a task
func (h *TaskHandler) Create(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), middleware.GetOwner(c), req.input())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTaskDTO(task))
}

// Update changes a task and cascades project and visibility to subtasks
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.Update(c.Request.Context(), middleware.GetOwner(c), id, req.input())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskDTO(task))
}

// Delete deletes a task
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.taskService.Delete(c.Request.Context(), middleware.GetOwner(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Hierarchy returns the full tree the task belongs to
func (h *TaskHandler) Hierarchy(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	branch, err := h.taskService.Hierarchy(c.Request.Context(), middleware.GetOwner(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTreeDTO(branch, dto.ToTaskDTO))
}
