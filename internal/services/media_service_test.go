package services

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appdotbuilder/humanities-cms-sub000/internal/config"
	"github.com/appdotbuilder/humanities-cms-sub000/internal/models"
)

// fakeStorage keeps uploaded objects in memory.
type fakeStorage struct {
	objects map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (f *fakeStorage) Upload(_ context.Context, key string, body io.Reader, _ string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.objects[key] = data
	return nil
}

func (f *fakeStorage) Delete(_ context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

func (f *fakeStorage) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://storage.test/" + key, nil
}

func testMediaConfig() *config.Config {
	return &config.Config{
		UploadMaxImageSize: 5 * 1024 * 1024,
		ThumbnailMaxPixels: 64,
		PresignTTL:         15 * time.Minute,
	}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 90, A: 255})
		}
	}
	buf := &bytes.Buffer{}
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestMediaUpload(t *testing.T) {
	db := newTestDB(t)
	storage := newFakeStorage()
	svc := NewMediaService(db, testMediaConfig(), storage, NewReferentialValidator())

	folder := createFolder(t, db, "Plates", nil)
	data := pngBytes(t, 128, 96)

	media, err := svc.Upload(context.Background(), "plate-1.png", data, "Plate I", &folder.ID)
	require.NoError(t, err)
	assert.Equal(t, "image/png", media.MimeType)
	assert.EqualValues(t, len(data), media.SizeBytes)
	require.NotNil(t, media.FolderID)
	assert.Equal(t, folder.ID, *media.FolderID)
	assert.NotEmpty(t, media.Key)
	assert.NotEmpty(t, media.ThumbKey)

	// Both the original and the thumbnail rendition were stored.
	assert.Contains(t, storage.objects, media.Key)
	assert.Contains(t, storage.objects, media.ThumbKey)
}

func TestMediaUploadRejectsNonImage(t *testing.T) {
	db := newTestDB(t)
	svc := NewMediaService(db, testMediaConfig(), newFakeStorage(), NewReferentialValidator())

	_, err := svc.Upload(context.Background(), "notes.png", []byte("plain text, not an image"), "", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid content type")

	var count int64
	require.NoError(t, db.Model(&models.Media{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestMediaUploadRejectsBadExtension(t *testing.T) {
	db := newTestDB(t)
	svc := NewMediaService(db, testMediaConfig(), newFakeStorage(), NewReferentialValidator())

	_, err := svc.Upload(context.Background(), "plate.tiff", pngBytes(t, 8, 8), "", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported image extension")
}

func TestMediaUploadMissingFolder(t *testing.T) {
	db := newTestDB(t)
	storage := newFakeStorage()
	svc := NewMediaService(db, testMediaConfig(), storage, NewReferentialValidator())

	missing := uint(77)
	_, err := svc.Upload(context.Background(), "plate.png", pngBytes(t, 8, 8), "", &missing)
	assert.True(t, IsNotFound(err))
	assert.Empty(t, storage.objects)
}

func TestMediaListRootFilter(t *testing.T) {
	db := newTestDB(t)
	svc := NewMediaService(db, testMediaConfig(), newFakeStorage(), NewReferentialValidator())

	folder := createFolder(t, db, "Plates", nil)
	inFolder := createMedia(t, db, "a.png", &folder.ID)
	atRoot := createMedia(t, db, "b.png", nil)

	root, err := svc.List(nil, true)
	require.NoError(t, err)
	require.Len(t, root, 1)
	assert.Equal(t, atRoot.ID, root[0].ID)

	scoped, err := svc.List(&folder.ID, false)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, inFolder.ID, scoped[0].ID)

	all, err := svc.List(nil, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestMediaUpdateMetadataMove(t *testing.T) {
	db := newTestDB(t)
	svc := NewMediaService(db, testMediaConfig(), newFakeStorage(), NewReferentialValidator())

	folder := createFolder(t, db, "Plates", nil)
	media := createMedia(t, db, "a.png", nil)

	updated, err := svc.UpdateMetadata(media.ID, UpdateMetadataInput{FolderID: &folder.ID})
	require.NoError(t, err)
	require.NotNil(t, updated.FolderID)
	assert.Equal(t, folder.ID, *updated.FolderID)

	// Moving to a missing folder is refused before any write.
	missing := folder.ID + 9
	_, err = svc.UpdateMetadata(media.ID, UpdateMetadataInput{FolderID: &missing})
	assert.True(t, IsNotFound(err))

	var reloaded models.Media
	require.NoError(t, db.First(&reloaded, media.ID).Error)
	require.NotNil(t, reloaded.FolderID)
	assert.Equal(t, folder.ID, *reloaded.FolderID)

	// folder_id of 0 moves the media back to the library root.
	rootSentinel := uint(0)
	updated, err = svc.UpdateMetadata(media.ID, UpdateMetadataInput{FolderID: &rootSentinel})
	require.NoError(t, err)
	assert.Nil(t, updated.FolderID)
}

func TestMediaDeleteRemovesAssociations(t *testing.T) {
	db := newTestDB(t)
	storage := newFakeStorage()
	svc := NewMediaService(db, testMediaConfig(), storage, NewReferentialValidator())

	media, err := svc.Upload(context.Background(), "plate.png", pngBytes(t, 16, 16), "", nil)
	require.NoError(t, err)

	gallery := createGallery(t, db, "Exhibition", "exhibition")
	gallerySvc := NewGalleryService(db, NewReferentialValidator())
	_, err = gallerySvc.AddImage(gallery.ID, media.ID, nil, 1)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), media.ID))

	assert.Empty(t, storage.objects)

	var mediaCount, imageCount int64
	require.NoError(t, db.Model(&models.Media{}).Count(&mediaCount).Error)
	require.NoError(t, db.Model(&models.GalleryImage{}).Count(&imageCount).Error)
	assert.Zero(t, mediaCount)
	assert.Zero(t, imageCount)

	// The gallery container itself stays.
	_, err = gallerySvc.GetGallery(gallery.ID)
	require.NoError(t, err)
}

func TestMediaDownloadURL(t *testing.T) {
	db := newTestDB(t)
	svc := NewMediaService(db, testMediaConfig(), newFakeStorage(), NewReferentialValidator())

	media, err := svc.Upload(context.Background(), "plate.png", pngBytes(t, 16, 16), "", nil)
	require.NoError(t, err)

	url, thumbURL, err := svc.DownloadURL(context.Background(), media)
	require.NoError(t, err)
	assert.Equal(t, "https://storage.test/"+media.Key, url)
	assert.Equal(t, "https://storage.test/"+media.ThumbKey, thumbURL)
}
