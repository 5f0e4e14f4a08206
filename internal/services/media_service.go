package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/appdotbuilder/humanities-cms-sub000/internal/config"
	"github.com/appdotbuilder/humanities-cms-sub000/internal/models"
)

// ObjectStorage is the slice of S3Service the media service needs; tests
// substitute an in-memory implementation.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, body io.Reader, ctype string) error
	Delete(ctx context.Context, key string) error
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// MediaService owns media rows and their bytes: upload, listing, metadata
// updates, moves between folders, and deletion. Folder and gallery semantics
// stay with their own services; this one only reads folder ids to validate
// them.
type MediaService struct {
	db        *gorm.DB
	cfg       *config.Config
	storage   ObjectStorage
	validator *ReferentialValidator
}

func NewMediaService(db *gorm.DB, cfg *config.Config, storage ObjectStorage, validator *ReferentialValidator) *MediaService {
	return &MediaService{db: db, cfg: cfg, storage: storage, validator: validator}
}

var allowedImageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true}

// Upload validates and stores an image, generates a thumbnail rendition, and
// creates the media row. A non-nil folderID must reference an existing folder.
func (s *MediaService) Upload(ctx context.Context, filename string, data []byte, altText string, folderID *uint) (*models.Media, error) {
	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, fmt.Errorf("invalid content type: expected image, got %s", mimeType)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedImageExts[ext] {
		return nil, fmt.Errorf("unsupported image extension: %s", ext)
	}

	if int64(len(data)) > s.cfg.UploadMaxImageSize {
		return nil, fmt.Errorf("image too large: %d bytes (max: %d)", len(data), s.cfg.UploadMaxImageSize)
	}

	if folderID != nil {
		if err := s.validator.EnsureFolder(s.db, *folderID); err != nil {
			return nil, err
		}
	}

	key := fmt.Sprintf("media/%s%s", uuid.New().String(), ext)
	if err := s.storage.Upload(ctx, key, bytes.NewReader(data), mimeType); err != nil {
		return nil, fmt.Errorf("failed to upload to storage: %w", err)
	}

	// Thumbnail is best-effort: a decode failure (e.g. animated webp) keeps
	// the original usable.
	thumbKey := ""
	if thumb, err := s.renderThumbnail(data); err != nil {
		log.Printf("Thumbnail generation failed for %s: %v", filename, err)
	} else {
		thumbKey = fmt.Sprintf("media/thumbs/%s.jpg", uuid.New().String())
		if err := s.storage.Upload(ctx, thumbKey, thumb, "image/jpeg"); err != nil {
			log.Printf("Thumbnail upload failed for %s: %v", filename, err)
			thumbKey = ""
		}
	}

	media := &models.Media{
		FolderID:  folderID,
		Key:       key,
		ThumbKey:  thumbKey,
		Filename:  filename,
		MimeType:  mimeType,
		SizeBytes: int64(len(data)),
		AltText:   altText,
	}
	if err := s.db.Create(media).Error; err != nil {
		// Best-effort storage cleanup so the bucket does not accumulate
		// objects no row points at.
		_ = s.storage.Delete(ctx, key)
		if thumbKey != "" {
			_ = s.storage.Delete(ctx, thumbKey)
		}
		return nil, fmt.Errorf("failed to create media record: %w", err)
	}
	return media, nil
}

func (s *MediaService) renderThumbnail(data []byte) (io.Reader, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	maxPx := s.cfg.ThumbnailMaxPixels
	thumb := imaging.Fit(img, maxPx, maxPx, imaging.Lanczos)

	buf := &bytes.Buffer{}
	if err := imaging.Encode(buf, thumb, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, err
	}
	return buf, nil
}

// List returns media rows, optionally filtered to one folder or to the
// library root (folder_id IS NULL).
func (s *MediaService) List(folderID *uint, rootOnly bool) ([]models.Media, error) {
	query := s.db.Model(&models.Media{})
	if rootOnly {
		query = query.Where("folder_id IS NULL")
	} else if folderID != nil {
		query = query.Where("folder_id = ?", *folderID)
	}

	var media []models.Media
	if err := query.Order("created_at DESC, id DESC").Find(&media).Error; err != nil {
		return nil, fmt.Errorf("failed to list media: %w", err)
	}
	return media, nil
}

// Get returns one media row.
func (s *MediaService) Get(id uint) (*models.Media, error) {
	var media models.Media
	if err := s.db.First(&media, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Kind: EntityMedia, ID: id}
		}
		return nil, fmt.Errorf("failed to fetch media %d: %w", id, err)
	}
	return &media, nil
}

// DownloadURL returns a presigned URL for the original object, and the
// thumbnail's when one exists.
func (s *MediaService) DownloadURL(ctx context.Context, media *models.Media) (string, string, error) {
	url, err := s.storage.PresignGet(ctx, media.Key, s.cfg.PresignTTL)
	if err != nil {
		return "", "", fmt.Errorf("failed to presign media %d: %w", media.ID, err)
	}
	thumbURL := ""
	if media.ThumbKey != "" {
		if thumbURL, err = s.storage.PresignGet(ctx, media.ThumbKey, s.cfg.PresignTTL); err != nil {
			return "", "", fmt.Errorf("failed to presign media %d thumbnail: %w", media.ID, err)
		}
	}
	return url, thumbURL, nil
}

// UpdateMetadataInput carries the mutable metadata of a media row. Nil fields
// are left unchanged; a FolderID of 0 moves the media to the library root.
type UpdateMetadataInput struct {
	Filename *string
	AltText  *string
	FolderID *uint
}

// UpdateMetadata renames, recaptions, or moves one media row. Moves validate
// the target folder first so folder_id can never dangle.
func (s *MediaService) UpdateMetadata(id uint, input UpdateMetadataInput) (*models.Media, error) {
	var media models.Media
	if err := s.db.First(&media, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Kind: EntityMedia, ID: id}
		}
		return nil, fmt.Errorf("failed to fetch media %d: %w", id, err)
	}

	updates := map[string]interface{}{}
	if input.Filename != nil {
		updates["filename"] = *input.Filename
	}
	if input.AltText != nil {
		updates["alt_text"] = *input.AltText
	}
	if input.FolderID != nil {
		if *input.FolderID == 0 {
			updates["folder_id"] = nil
		} else {
			if err := s.validator.EnsureFolder(s.db, *input.FolderID); err != nil {
				return nil, err
			}
			updates["folder_id"] = *input.FolderID
		}
	}

	if len(updates) == 0 {
		return &media, nil
	}
	if err := s.db.Model(&media).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update media %d: %w", id, err)
	}
	return &media, nil
}

// Delete removes the stored objects, the media row, and any gallery
// association rows pointing at it. Storage goes first so the bucket cannot
// keep objects no row references; the row and its associations go in one
// transaction.
func (s *MediaService) Delete(ctx context.Context, id uint) error {
	var media models.Media
	if err := s.db.First(&media, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Kind: EntityMedia, ID: id}
		}
		return fmt.Errorf("failed to fetch media %d: %w", id, err)
	}

	if err := s.storage.Delete(ctx, media.Key); err != nil {
		log.Printf("Storage delete failed for %s: %v", media.Key, err)
	}
	if media.ThumbKey != "" {
		if err := s.storage.Delete(ctx, media.ThumbKey); err != nil {
			log.Printf("Storage delete failed for %s: %v", media.ThumbKey, err)
		}
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.GalleryImage{}, "media_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete gallery images of media %d: %w", id, err)
		}
		if err := tx.Delete(&models.Media{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete media %d: %w", id, err)
		}
		return nil
	})
}
