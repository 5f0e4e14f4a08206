package services

import (
	"errors"
	"fmt"

	"github.com/appdotbuilder/humanities-cms-sub000/internal/models"
	"gorm.io/gorm"
)

// GalleryService owns galleries and the ordered, captioned association
// between a gallery and its media. Association rows never own the media they
// point at: removing one leaves the media row untouched.
type GalleryService struct {
	db        *gorm.DB
	validator *ReferentialValidator
}

func NewGalleryService(db *gorm.DB, validator *ReferentialValidator) *GalleryService {
	return &GalleryService{db: db, validator: validator}
}

// ReorderEntry assigns a new sort position to one association row.
type ReorderEntry struct {
	ID        uint `json:"id" binding:"required"`
	SortOrder int  `json:"sort_order"`
}

// CreateGallery inserts a new, empty gallery container.
func (s *GalleryService) CreateGallery(title, slug, description string) (*models.ImageGallery, error) {
	gallery := &models.ImageGallery{Title: title, Slug: slug, Description: description}
	if err := s.db.Create(gallery).Error; err != nil {
		return nil, fmt.Errorf("failed to create gallery: %w", err)
	}
	return gallery, nil
}

// ListGalleries returns all galleries without their images.
func (s *GalleryService) ListGalleries() ([]models.ImageGallery, error) {
	var galleries []models.ImageGallery
	if err := s.db.Order("id ASC").Find(&galleries).Error; err != nil {
		return nil, fmt.Errorf("failed to list galleries: %w", err)
	}
	return galleries, nil
}

// GetGallery returns one gallery with its images in display order:
// sort_order first, insertion order as the stable tie-break.
func (s *GalleryService) GetGallery(id uint) (*models.ImageGallery, error) {
	var gallery models.ImageGallery
	err := s.db.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC, id ASC").Preload("Media")
	}).First(&gallery, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Kind: EntityGallery, ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch gallery %d: %w", id, err)
	}
	return &gallery, nil
}

// UpdateGallery changes title/slug/description; nil fields are left alone.
func (s *GalleryService) UpdateGallery(id uint, title, slug, description *string) (*models.ImageGallery, error) {
	var gallery models.ImageGallery
	if err := s.db.First(&gallery, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Kind: EntityGallery, ID: id}
		}
		return nil, fmt.Errorf("failed to fetch gallery %d: %w", id, err)
	}

	updates := map[string]interface{}{}
	if title != nil {
		updates["title"] = *title
	}
	if slug != nil {
		updates["slug"] = *slug
	}
	if description != nil {
		updates["description"] = *description
	}
	if len(updates) == 0 {
		return &gallery, nil
	}
	if err := s.db.Model(&gallery).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update gallery %d: %w", id, err)
	}
	return &gallery, nil
}

// DeleteGallery removes the gallery and its association rows in one
// transaction. Media rows are never touched.
func (s *GalleryService) DeleteGallery(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.validator.EnsureGallery(tx, id); err != nil {
			return err
		}
		if err := tx.Delete(&models.GalleryImage{}, "gallery_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete gallery %d images: %w", id, err)
		}
		if err := tx.Delete(&models.ImageGallery{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete gallery %d: %w", id, err)
		}
		return nil
	})
}

// AddImage places media inside a gallery at the caller-supplied position.
// Existing rows are not renumbered; equal sort orders settle on insertion
// order for display.
func (s *GalleryService) AddImage(galleryID, mediaID uint, caption *string, sortOrder int) (*models.GalleryImage, error) {
	if err := s.validator.EnsureGallery(s.db, galleryID); err != nil {
		return nil, err
	}
	if err := s.validator.EnsureMedia(s.db, mediaID); err != nil {
		return nil, err
	}

	image := &models.GalleryImage{
		GalleryID: galleryID,
		MediaID:   mediaID,
		Caption:   caption,
		SortOrder: sortOrder,
	}
	if err := s.db.Create(image).Error; err != nil {
		return nil, fmt.Errorf("failed to add image to gallery %d: %w", galleryID, err)
	}
	return image, nil
}

// RemoveImage deletes one association row only.
func (s *GalleryService) RemoveImage(id uint) error {
	result := s.db.Delete(&models.GalleryImage{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to remove gallery image %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return &NotFoundError{Kind: EntityGalleryImage, ID: id}
	}
	return nil
}

// Reorder applies a batch of sort positions to a gallery's rows. Every entry
// is validated against the stated gallery before any write; the batch commits
// as a whole or not at all, so a failing entry leaves the prior ordering
// intact.
func (s *GalleryService) Reorder(galleryID uint, entries []ReorderEntry) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.validator.EnsureGallery(tx, galleryID); err != nil {
			return err
		}

		for _, entry := range entries {
			var image models.GalleryImage
			err := tx.Select("id", "gallery_id").First(&image, "id = ?", entry.ID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Kind: EntityGalleryImage, ID: entry.ID}
			}
			if err != nil {
				return fmt.Errorf("failed to fetch gallery image %d: %w", entry.ID, err)
			}
			if image.GalleryID != galleryID {
				return &GalleryMismatchError{GalleryImageID: entry.ID, GalleryID: galleryID}
			}
		}

		for _, entry := range entries {
			if err := tx.Model(&models.GalleryImage{}).Where("id = ?", entry.ID).
				Update("sort_order", entry.SortOrder).Error; err != nil {
				return fmt.Errorf("failed to reorder gallery image %d: %w", entry.ID, err)
			}
		}
		return nil
	})
}

// UpdateCaption changes only the caption of one association row; passing nil
// clears it. Ordering and foreign keys are untouched.
func (s *GalleryService) UpdateCaption(id uint, caption *string) (*models.GalleryImage, error) {
	var image models.GalleryImage
	if err := s.db.First(&image, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Kind: EntityGalleryImage, ID: id}
		}
		return nil, fmt.Errorf("failed to fetch gallery image %d: %w", id, err)
	}

	if err := s.db.Model(&image).Update("caption", caption).Error; err != nil {
		return nil, fmt.Errorf("failed to update caption of gallery image %d: %w", id, err)
	}
	image.Caption = caption
	return &image, nil
}
