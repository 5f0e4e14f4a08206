package models

import (
	"time"
)

// ImageGallery is a named container for ordered media. The ordering itself
// lives on the GalleryImage association rows.
type ImageGallery struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Slug        string    `gorm:"size:255;uniqueIndex" json:"slug"`
	Description string    `gorm:"size:1000" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Images []GalleryImage `gorm:"foreignKey:GalleryID" json:"images,omitempty"`
}

func (ImageGallery) TableName() string {
	return "image_galleries"
}

// GalleryImage places one media item inside one gallery with a caption and a
// display position. SortOrder is only meaningful relative to rows sharing the
// same GalleryID; ties fall back to insertion order (id).
type GalleryImage struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	GalleryID uint      `gorm:"not null;index:gallery_sort,priority:1" json:"gallery_id"`
	MediaID   uint      `gorm:"not null;index" json:"media_id"`
	Caption   *string   `gorm:"size:1000" json:"caption"`
	SortOrder int       `gorm:"not null;default:0;index:gallery_sort,priority:2" json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`

	Media *Media `gorm:"foreignKey:MediaID" json:"media,omitempty"`
}

func (GalleryImage) TableName() string {
	return "gallery_images"
}
