package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferentialValidator(t *testing.T) {
	db := newTestDB(t)
	v := NewReferentialValidator()

	folder := createFolder(t, db, "Archive", nil)
	media := createMedia(t, db, "map.png", nil)
	gallery := createGallery(t, db, "Maps", "maps")

	require.NoError(t, v.EnsureFolder(db, folder.ID))
	require.NoError(t, v.EnsureMedia(db, media.ID))
	require.NoError(t, v.EnsureGallery(db, gallery.ID))

	tests := []struct {
		name    string
		check   func() error
		kind    EntityKind
		message string
	}{
		{"folder", func() error { return v.EnsureFolder(db, 42) }, EntityFolder, "folder with id 42 not found"},
		{"media", func() error { return v.EnsureMedia(db, 42) }, EntityMedia, "media with id 42 not found"},
		{"gallery", func() error { return v.EnsureGallery(db, 42) }, EntityGallery, "gallery with id 42 not found"},
		{"gallery image", func() error { return v.EnsureGalleryImage(db, 42) }, EntityGalleryImage, "gallery image with id 42 not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.check()
			var nf *NotFoundError
			require.ErrorAs(t, err, &nf)
			assert.Equal(t, tt.kind, nf.Kind)
			assert.EqualValues(t, 42, nf.ID)
			assert.Equal(t, tt.message, err.Error())
		})
	}
}
