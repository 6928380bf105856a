package models

import "time"

// Tag is a free-form label attached to projects and tasks.
type Tag struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"type:varchar(200);not null" json:"name"`
	WorkspaceID uint64    `gorm:"not null;index" json:"workspace"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Priority ranks projects and tasks within a workspace.
type Priority struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"type:varchar(200);not null" json:"name"`
	Description *string   `gorm:"type:varchar(500)" json:"description"`
	Order       *int16    `gorm:"column:sort_order;default:0" json:"order"`
	WorkspaceID uint64    `gorm:"not null;index" json:"workspace"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Projects []Project `gorm:"foreignKey:PriorityID;constraint:OnDelete:SET NULL" json:"-"`
	Tasks    []Task    `gorm:"foreignKey:PriorityID;constraint:OnDelete:SET NULL" json:"-"`
}

// Status is a workflow state for projects and tasks within a workspace.
type Status struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"type:varchar(200);not null" json:"name"`
	Description *string   `gorm:"type:varchar(500)" json:"description"`
	Order       *int16    `gorm:"column:sort_order;default:0" json:"order"`
	WorkspaceID uint64    `gorm:"not null;index" json:"workspace"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Projects []Project `gorm:"foreignKey:StatusID;constraint:OnDelete:CASCADE" json:"-"`
	Tasks    []Task    `gorm:"foreignKey:StatusID;constraint:OnDelete:CASCADE" json:"-"`
}

// LabelFields carries the writable attributes shared by Tag, Priority and Status.
type LabelFields struct {
	Name        *string
	Description *string
	Order       *int16
}

func (t *Tag) SetLabelWorkspace(id uint64) { t.WorkspaceID = id }
func (t *Tag) LabelID() uint64             { return t.ID }
func (t *Tag) ApplyLabel(fields LabelFields) {
	if fields.Name != nil {
		t.Name = *fields.Name
	}
}

func (p *Priority) SetLabelWorkspace(id uint64) { p.WorkspaceID = id }
func (p *Priority) LabelID() uint64             { return p.ID }
func (p *Priority) ApplyLabel(fields LabelFields) {
	if fields.Name != nil {
		p.Name = *fields.Name
	}
	if fields.Description != nil {
		p.Description = fields.Description
	}
	if fields.Order != nil {
		p.Order = fields.Order
	}
}

func (s *Status) SetLabelWorkspace(id uint64) { s.WorkspaceID = id }
func (s *Status) LabelID() uint64             { return s.ID }
func (s *Status) ApplyLabel(fields LabelFields) {
	if fields.Name != nil {
		s.Name = *fields.Name
	}
	if fields.Description != nil {
		s.Description = fields.Description
	}
	if fields.Order != nil {
		s.Order = fields.Order
	}
}
