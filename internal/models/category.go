package models

import "time"

// Category segregates projects and tasks inside a workspace. Categories nest.
type Category struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"type:varchar(200);not null" json:"name"`
	Description *string   `gorm:"type:varchar(500)" json:"description"`
	WorkspaceID uint64    `gorm:"not null;index" json:"workspace"`
	ParentID    *uint64   `gorm:"index" json:"parent"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Children []Category `gorm:"foreignKey:ParentID;constraint:OnDelete:SET NULL" json:"-"`
	Projects []Project  `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`
	Tasks    []Task     `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`
}

func (c *Category) NodeID() uint64        { return c.ID }
func (c *Category) ParentNodeID() *uint64 { return c.ParentID }
func (c *Category) WorkspaceRef() uint64  { return c.WorkspaceID }
