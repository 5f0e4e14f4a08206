package services

import (
	"errors"
	"fmt"

	"github.com/appdotbuilder/humanities-cms-sub000/internal/models"
	"gorm.io/gorm"
)

// FolderService owns the media library's folder forest: flat rows linked by
// parent pointers, no cycles, and no media left dangling when a folder goes
// away.
type FolderService struct {
	db        *gorm.DB
	validator *ReferentialValidator
}

func NewFolderService(db *gorm.DB, validator *ReferentialValidator) *FolderService {
	return &FolderService{db: db, validator: validator}
}

// UpdateFolderInput carries the fields a folder update may change. Nil fields
// are left untouched; a ParentID of 0 moves the folder to the root.
type UpdateFolderInput struct {
	Name     *string
	ParentID *uint
}

// Create inserts a new folder under parentID, or at the root when parentID is
// nil. The parent must already exist.
func (s *FolderService) Create(name string, parentID *uint) (*models.MediaFolder, error) {
	if parentID != nil {
		if err := s.validator.EnsureFolder(s.db, *parentID); err != nil {
			return nil, err
		}
	}

	folder := &models.MediaFolder{Name: name, ParentID: parentID}
	if err := s.db.Create(folder).Error; err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}
	return folder, nil
}

// List returns every folder. Callers rebuild the tree from parent_id links.
func (s *FolderService) List() ([]models.MediaFolder, error) {
	var folders []models.MediaFolder
	if err := s.db.Order("id ASC").Find(&folders).Error; err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}
	return folders, nil
}

// Get returns one folder with its direct media count. Absence is a normal
// outcome, reported as a NotFoundError.
func (s *FolderService) Get(id uint) (*models.MediaFolder, error) {
	var folder models.MediaFolder
	if err := s.db.First(&folder, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Kind: EntityFolder, ID: id}
		}
		return nil, fmt.Errorf("failed to fetch folder %d: %w", id, err)
	}

	if err := s.db.Model(&models.Media{}).Where("folder_id = ?", folder.ID).Count(&folder.MediaCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count media in folder %d: %w", id, err)
	}
	return &folder, nil
}

// Update renames and/or re-parents a folder. Re-parenting is rejected when it
// would make the folder an ancestor of itself, whether directly or through a
// chain of descendants.
func (s *FolderService) Update(id uint, input UpdateFolderInput) (*models.MediaFolder, error) {
	var folder models.MediaFolder
	if err := s.db.First(&folder, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Kind: EntityFolder, ID: id}
		}
		return nil, fmt.Errorf("failed to fetch folder %d: %w", id, err)
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.ParentID != nil {
		if *input.ParentID == 0 {
			// Move to root.
			updates["parent_id"] = nil
		} else {
			if err := s.validator.EnsureFolder(s.db, *input.ParentID); err != nil {
				return nil, err
			}
			cycle, err := s.wouldCreateCycle(id, *input.ParentID)
			if err != nil {
				return nil, err
			}
			if cycle {
				return nil, ErrInvalidParent
			}
			updates["parent_id"] = *input.ParentID
		}
	}

	if len(updates) == 0 {
		return &folder, nil
	}
	if err := s.db.Model(&folder).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update folder %d: %w", id, err)
	}
	return &folder, nil
}

// Delete removes a leaf folder. Media directly inside it is promoted to the
// folder's parent (or the root) in the same transaction, so no media row ever
// points at a missing folder. Folders with subfolders are refused.
func (s *FolderService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var folder models.MediaFolder
		if err := tx.First(&folder, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Kind: EntityFolder, ID: id}
			}
			return fmt.Errorf("failed to fetch folder %d: %w", id, err)
		}

		var children int64
		if err := tx.Model(&models.MediaFolder{}).Where("parent_id = ?", id).Count(&children).Error; err != nil {
			return fmt.Errorf("failed to count subfolders of %d: %w", id, err)
		}
		if children > 0 {
			return ErrFolderHasChildren
		}

		// Promote the folder's media to its parent before the row goes away.
		if err := tx.Model(&models.Media{}).Where("folder_id = ?", id).
			Update("folder_id", folder.ParentID).Error; err != nil {
			return fmt.Errorf("failed to reassign media from folder %d: %w", id, err)
		}

		if err := tx.Delete(&models.MediaFolder{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete folder %d: %w", id, err)
		}
		return nil
	})
}

// wouldCreateCycle walks the ancestor chain of the proposed parent. The walk
// is bounded by the total folder count so a corrupt chain in the stored data
// cannot loop forever.
func (s *FolderService) wouldCreateCycle(folderID, parentID uint) (bool, error) {
	if parentID == folderID {
		return true, nil
	}

	var total int64
	if err := s.db.Model(&models.MediaFolder{}).Count(&total).Error; err != nil {
		return false, fmt.Errorf("failed to count folders: %w", err)
	}

	current := parentID
	for i := int64(0); i < total; i++ {
		var ancestor models.MediaFolder
		if err := s.db.Select("id", "parent_id").First(&ancestor, "id = ?", current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Chain ends at a missing row; treat as a root.
				return false, nil
			}
			return false, fmt.Errorf("failed to walk folder ancestors: %w", err)
		}
		if ancestor.ParentID == nil {
			return false, nil
		}
		if *ancestor.ParentID == folderID {
			return true, nil
		}
		current = *ancestor.ParentID
	}

	// Walked more hops than folders exist: the stored chain already cycles.
	return true, nil
}
