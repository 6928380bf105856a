package dto

import (
	"time"

	"github.com/yukikurage/workspace-task-api/internal/models"
)

// ScheduleDTO carries the planning fields of projects and tasks.
// DueIn is the number of seconds until the estimated end date.
type ScheduleDTO struct {
	EstimatedStartDate *time.Time `json:"estimated_start_date"`
	EstimatedEndDate   *time.Time `json:"estimated_end_date"`
	ActualStartDate    *time.Time `json:"actual_start_date"`
	ActualEndDate      *time.Time `json:"actual_end_date"`
	EstimatedEffort    *uint16    `json:"estimated_effort"`
	ActualEffort       *uint16    `json:"actual_effort"`
	DueIn              *int64     `json:"due_in"`
}

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          uint64   `json:"id"`
	UUID        string   `json:"uuid"`
	Title       string   `json:"title"`
	Detail      string   `json:"detail"`
	WorkspaceID uint64   `json:"workspace"`
	CategoryID  uint64   `json:"category"`
	StatusID    *uint64  `json:"status"`
	PriorityID  *uint64  `json:"priority"`
	ParentID    *uint64  `json:"parent"`
	Tags        []uint64 `json:"tags"`
	IsVisible   bool     `json:"is_visible"`
	ScheduleDTO
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64   `json:"id"`
	UUID        string   `json:"uuid"`
	Title       string   `json:"title"`
	Detail      string   `json:"detail"`
	WorkspaceID uint64   `json:"workspace"`
	CategoryID  uint64   `json:"category"`
	ProjectID   *uint64  `json:"project"`
	StatusID    *uint64  `json:"status"`
	PriorityID  *uint64  `json:"priority"`
	ParentID    *uint64  `json:"parent"`
	Tags        []uint64 `json:"tags"`
	IsVisible   bool     `json:"is_visible"`
	ScheduleDTO
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Conversion functions

// ToScheduleDTO converts a Schedule, computing DueIn against now
func ToScheduleDTO(s models.Schedule, now time.Time) ScheduleDTO {
	out := ScheduleDTO{
		EstimatedStartDate: s.EstimatedStartDate,
		EstimatedEndDate:   s.EstimatedEndDate,
		ActualStartDate:    s.ActualStartDate,
		ActualEndDate:      s.ActualEndDate,
		EstimatedEffort:    s.EstimatedEffort,
		ActualEffort:       s.ActualEffort,
	}
	if d := s.DueIn(now); d != nil {
		secs := int64(d.Seconds())
		out.DueIn = &secs
	}
	return out
}

func tagIDs(tags []models.Tag) []uint64 {
	ids := make([]uint64, len(tags))
	for i, tag := range tags {
		ids[i] = tag.ID
	}
	return ids
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(p *models.Project) ProjectDTO {
	return ProjectDTO{
		ID:          p.ID,
		UUID:        p.UUID,
		Title:       p.Title,
		Detail:      p.Detail,
		WorkspaceID: p.WorkspaceID,
		CategoryID:  p.CategoryID,
		StatusID:    p.StatusID,
		PriorityID:  p.PriorityID,
		ParentID:    p.ParentID,
		Tags:        tagIDs(p.Tags),
		IsVisible:   p.IsVisible,
		ScheduleDTO: ToScheduleDTO(p.Schedule, time.Now()),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToProjectDTOs converts a slice of projects
func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	out := make([]ProjectDTO, len(projects))
	for i := range projects {
		out[i] = ToProjectDTO(&projects[i])
	}
	return out
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(t *models.Task) TaskDTO {
	return TaskDTO{
		ID:          t.ID,
		UUID:        t.UUID,
		Title:       t.Title,
		Detail:      t.Detail,
		WorkspaceID: t.WorkspaceID,
		CategoryID:  t.CategoryID,
		ProjectID:   t.ProjectID,
		StatusID:    t.StatusID,
		PriorityID:  t.PriorityID,
		ParentID:    t.ParentID,
		Tags:        tagIDs(t.Tags),
		IsVisible:   t.IsVisible,
		ScheduleDTO: ToScheduleDTO(t.Schedule, time.Now()),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	out := make([]TaskDTO, len(tasks))
	for i := range tasks {
		out[i] = ToTaskDTO(&tasks[i])
	}
	return out
}
