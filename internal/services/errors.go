package services

import (
	"errors"
	"fmt"
)

// EntityKind names the entity an operation validated or failed to find.
type EntityKind string

const (
	EntityFolder       EntityKind = "folder"
	EntityMedia        EntityKind = "media"
	EntityGallery      EntityKind = "gallery"
	EntityGalleryImage EntityKind = "gallery image"
)

// NotFoundError reports a referenced entity that does not exist. It is a
// recoverable caller error, safe to surface verbatim.
type NotFoundError struct {
	Kind EntityKind
	ID   uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d not found", e.Kind, e.ID)
}

// IsNotFound reports whether err is a NotFoundError of any entity kind.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// GalleryMismatchError reports a reorder entry addressing an association row
// through a gallery it does not belong to.
type GalleryMismatchError struct {
	GalleryImageID uint
	GalleryID      uint
}

func (e *GalleryMismatchError) Error() string {
	return fmt.Sprintf("gallery image with id %d does not belong to gallery %d", e.GalleryImageID, e.GalleryID)
}

var (
	// ErrInvalidParent rejects folder updates that would make a folder its
	// own ancestor (self-parenting or any deeper cycle).
	ErrInvalidParent = errors.New("folder cannot be its own parent or a descendant of itself")

	// ErrFolderHasChildren blocks deletion of folders with subfolders;
	// subtree removal is never implicit.
	ErrFolderHasChildren = errors.New("folder has subfolders and cannot be deleted")
)
