package models

import (
	"time"
)

// Media is one file in the media library. Bytes live in S3 under Key (and
// ThumbKey for the generated thumbnail); the row carries metadata and the
// folder assignment. FolderID is nil for media at the library root.
type Media struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	FolderID  *uint  `gorm:"index" json:"folder_id"`
	Key       string `gorm:"size:512;uniqueIndex" json:"key"`
	ThumbKey  string `gorm:"size:512" json:"thumb_key,omitempty"`
	Filename  string `gorm:"size:255" json:"filename"`
	MimeType  string `gorm:"size:120" json:"mime_type"`
	SizeBytes int64  `json:"size_bytes"`
	AltText   string `gorm:"size:512" json:"alt_text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Media) TableName() string {
	return "media"
}
