package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/appdotbuilder/humanities-cms-sub000/internal/models"
)

// newTestDB opens a per-test in-memory database with the media library schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.MediaFolder{},
		&models.Media{},
		&models.ImageGallery{},
		&models.GalleryImage{},
	))
	return db
}

func createFolder(t *testing.T, db *gorm.DB, name string, parentID *uint) *models.MediaFolder {
	t.Helper()
	folder := &models.MediaFolder{Name: name, ParentID: parentID}
	require.NoError(t, db.Create(folder).Error)
	return folder
}

func createMedia(t *testing.T, db *gorm.DB, filename string, folderID *uint) *models.Media {
	t.Helper()
	media := &models.Media{
		FolderID: folderID,
		Key:      fmt.Sprintf("media/%s-%s", t.Name(), filename),
		Filename: filename,
		MimeType: "image/png",
	}
	require.NoError(t, db.Create(media).Error)
	return media
}

func createGallery(t *testing.T, db *gorm.DB, title, slug string) *models.ImageGallery {
	t.Helper()
	gallery := &models.ImageGallery{Title: title, Slug: slug}
	require.NoError(t, db.Create(gallery).Error)
	return gallery
}
