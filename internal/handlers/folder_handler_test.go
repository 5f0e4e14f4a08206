package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/appdotbuilder/humanities-cms-sub000/internal/models"
	"github.com/appdotbuilder/humanities-cms-sub000/internal/services"
)

func setupFolderRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.MediaFolder{}, &models.Media{}))

	handler := NewFolderHandler(services.NewFolderService(db, services.NewReferentialValidator()))

	router := gin.New()
	router.GET("/folders", handler.ListFolders)
	router.GET("/folders/:id", handler.GetFolder)
	router.POST("/folders", handler.CreateFolder)
	router.PUT("/folders/:id", handler.UpdateFolder)
	router.DELETE("/folders/:id", handler.DeleteFolder)
	return router, db
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateFolderEndpoint(t *testing.T) {
	router, _ := setupFolderRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/folders", gin.H{"name": "Archive"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var folder models.MediaFolder
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &folder))
	assert.Equal(t, "Archive", folder.Name)
	assert.Nil(t, folder.ParentID)

	// Missing name is a 400 before any service call.
	rec = doJSON(t, router, http.MethodPost, "/folders", gin.H{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// A nonexistent parent is a 404 with the entity kind in the message.
	rec = doJSON(t, router, http.MethodPost, "/folders", gin.H{"name": "Sub", "parent_id": folder.ID + 1000})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "folder with id")
}

func TestUpdateFolderEndpointInvalidParent(t *testing.T) {
	router, db := setupFolderRouter(t)

	folder := models.MediaFolder{Name: "Archive"}
	require.NoError(t, db.Create(&folder).Error)

	rec := doJSON(t, router, http.MethodPut, fmt.Sprintf("/folders/%d", folder.ID), gin.H{"parent_id": folder.ID})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestDeleteFolderEndpointConflict(t *testing.T) {
	router, db := setupFolderRouter(t)

	parent := models.MediaFolder{Name: "Parent"}
	require.NoError(t, db.Create(&parent).Error)
	child := models.MediaFolder{Name: "Child", ParentID: &parent.ID}
	require.NoError(t, db.Create(&child).Error)

	rec := doJSON(t, router, http.MethodDelete, fmt.Sprintf("/folders/%d", parent.ID), nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/folders/%d", child.ID), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetFolderEndpoint(t *testing.T) {
	router, db := setupFolderRouter(t)

	folder := models.MediaFolder{Name: "Archive"}
	require.NoError(t, db.Create(&folder).Error)

	rec := doJSON(t, router, http.MethodGet, fmt.Sprintf("/folders/%d", folder.ID), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/folders/9999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/folders/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
