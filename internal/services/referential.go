package services

import (
	"errors"
	"fmt"

	"github.com/appdotbuilder/humanities-cms-sub000/internal/models"
	"gorm.io/gorm"
)

// ReferentialValidator confirms that referenced rows exist before a mutation
// proceeds, translating absence into a typed NotFoundError. It runs against
// whatever handle it is given, so callers can pass a transaction to keep the
// checks inside the same unit of work as the writes they guard.
type ReferentialValidator struct{}

func NewReferentialValidator() *ReferentialValidator {
	return &ReferentialValidator{}
}

func (v *ReferentialValidator) EnsureFolder(db *gorm.DB, id uint) error {
	return v.ensure(db, &models.MediaFolder{}, EntityFolder, id)
}

func (v *ReferentialValidator) EnsureMedia(db *gorm.DB, id uint) error {
	return v.ensure(db, &models.Media{}, EntityMedia, id)
}

func (v *ReferentialValidator) EnsureGallery(db *gorm.DB, id uint) error {
	return v.ensure(db, &models.ImageGallery{}, EntityGallery, id)
}

func (v *ReferentialValidator) EnsureGalleryImage(db *gorm.DB, id uint) error {
	return v.ensure(db, &models.GalleryImage{}, EntityGalleryImage, id)
}

func (v *ReferentialValidator) ensure(db *gorm.DB, model interface{}, kind EntityKind, id uint) error {
	err := db.Select("id").First(model, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Kind: kind, ID: id}
	}
	if err != nil {
		return fmt.Errorf("failed to check %s %d: %w", kind, id, err)
	}
	return nil
}
