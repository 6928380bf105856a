package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Task struct {
	ID          uint64  `gorm:"primarykey" json:"id"`
	UUID        string  `gorm:"type:varchar(36);uniqueIndex;not null" json:"uuid"`
	Title       string  `gorm:"type:varchar(240);not null" json:"title"`
	Detail      string  `gorm:"type:text" json:"detail"`
	WorkspaceID uint64  `gorm:"not null;index" json:"workspace"`
	CategoryID  uint64  `gorm:"not null;index" json:"category"`
	ProjectID   *uint64 `gorm:"index" json:"project"`
	StatusID    *uint64 `gorm:"index" json:"status"`
	PriorityID  *uint64 `gorm:"index" json:"priority"`
	ParentID    *uint64 `gorm:"index" json:"parent"`
	IsVisible   bool    `gorm:"not null" json:"is_visible"`
	Schedule
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Tags     []Tag  `gorm:"many2many:task_tags;constraint:OnDelete:CASCADE" json:"-"`
	Children []Task `gorm:"foreignKey:ParentID;constraint:OnDelete:SET NULL" json:"-"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.UUID == "" {
		t.UUID = uuid.NewString()
	}
	return nil
}

func (t *Task) NodeID() uint64        { return t.ID }
func (t *Task) ParentNodeID() *uint64 { return t.ParentID }
func (t *Task) WorkspaceRef() uint64  { return t.WorkspaceID }
func (t *Task) CategoryRef() uint64   { return t.CategoryID }
func (t *Task) Visibility() bool      { return t.IsVisible }
