package models

import (
	"time"
)

// MediaFolder is one node of the media library's folder forest. Folders are
// stored as flat rows linked by parent pointers; a nil ParentID marks a root.
type MediaFolder struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	ParentID  *uint     `gorm:"index" json:"parent_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Populated on list/detail responses, not a column.
	MediaCount int64 `gorm:"-" json:"media_count"`
}

func (MediaFolder) TableName() string {
	return "media_folders"
}
