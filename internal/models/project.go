package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Project struct {
	ID          uint64  `gorm:"primarykey" json:"id"`
	UUID        string  `gorm:"type:varchar(36);uniqueIndex;not null" json:"uuid"`
	Title       string  `gorm:"type:varchar(200);not null" json:"title"`
	Detail      string  `gorm:"type:text" json:"detail"`
	WorkspaceID uint64  `gorm:"not null;index" json:"workspace"`
	CategoryID  uint64  `gorm:"not null;index" json:"category"`
	StatusID    *uint64 `gorm:"index" json:"status"`
	PriorityID  *uint64 `gorm:"index" json:"priority"`
	ParentID    *uint64 `gorm:"index" json:"parent"`
	IsVisible   bool    `gorm:"not null" json:"is_visible"`
	Schedule
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Tags     []Tag     `gorm:"many2many:project_tags;constraint:OnDelete:CASCADE" json:"-"`
	Children []Project `gorm:"foreignKey:ParentID;constraint:OnDelete:SET NULL" json:"-"`
	Tasks    []Task    `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.UUID == "" {
		p.UUID = uuid.NewString()
	}
	return nil
}

func (p *Project) NodeID() uint64        { return p.ID }
func (p *Project) ParentNodeID() *uint64 { return p.ParentID }
func (p *Project) WorkspaceRef() uint64  { return p.WorkspaceID }
func (p *Project) CategoryRef() uint64   { return p.CategoryID }
func (p *Project) Visibility() bool      { return p.IsVisible }
