package handlers

import (
	"time"

	"github.com/yukikurage/workspace-task-api/internal/services"
	"github.com/yukikurage/workspace-task-api/internal/utils"
)

// workItemRequest is the request body shared by projects and tasks. Nullable
// references use utils.Optional so an explicit null clears them.
type workItemRequest struct {
	Title       *string                `json:"title" binding:"omitempty,max=240"`
	Detail      *string                `json:"detail"`
	WorkspaceID *uint64                `json:"workspace"`
	CategoryID  *uint64                `json:"category"`
	StatusID    utils.Optional[uint64] `json:"status"`
	PriorityID  utils.Optional[uint64] `json:"priority"`
	ParentID    utils.Optional[uint64] `json:"parent"`
	IsVisible   *bool                  `json:"is_visible"`
	Tags        *[]uint64              `json:"tags"`

	EstimatedStartDate utils.Optional[time.Time] `json:"estimated_start_date"`
	EstimatedEndDate   utils.Optional[time.Time] `json:"estimated_end_date"`
	ActualStartDate    utils.Optional[time.Time] `json:"actual_start_date"`
	ActualEndDate      utils.Optional[time.Time] `json:"actual_end_date"`
	EstimatedEffort    utils.Optional[uint16]    `json:"estimated_effort"`
	ActualEffort       utils.Optional[uint16]    `json:"actual_effort"`
}

func (r workItemRequest) input() services.WorkItemInput {
	return services.WorkItemInput{
		Title:       r.Title,
		Detail:      r.Detail,
		WorkspaceID: r.WorkspaceID,
		CategoryID:  r.CategoryID,
		StatusID:    r.StatusID,
		PriorityID:  r.PriorityID,
		ParentID:    r.ParentID,
		IsVisible:   r.IsVisible,
		TagIDs:      r.Tags,
		Schedule: services.ScheduleInput{
			EstimatedStartDate: r.EstimatedStartDate,
			EstimatedEndDate:   r.EstimatedEndDate,
			ActualStartDate:    r.ActualStartDate,
			ActualEndDate:      r.ActualEndDate,
			EstimatedEffort:    r.EstimatedEffort,
			ActualEffort:       r.ActualEffort,
		},
	}
}
