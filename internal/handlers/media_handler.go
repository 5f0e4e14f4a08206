package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/appdotbuilder/humanities-cms-sub000/internal/services"
)

type MediaHandler struct {
	mediaService *services.MediaService
}

func NewMediaHandler(mediaService *services.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// UploadMedia handles a single image upload
// POST /admin/media
// Multipart form: file (required), alt_text (optional), folder_id (optional)
func (h *MediaHandler) UploadMedia(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return
	}

	var folderID *uint
	if raw := c.PostForm("folder_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || parsed == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "folder_id must be a positive number"})
			return
		}
		id := uint(parsed)
		folderID = &id
	}

	media, err := h.mediaService.Upload(c.Request.Context(), header.Filename, data, c.PostForm("alt_text"), folderID)
	if err != nil {
		if services.IsNotFound(err) {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, media)
}

// ListMedia lists media, optionally scoped to a folder or the library root
// GET /media?folder_id=3 | GET /media?folder_id=root
func (h *MediaHandler) ListMedia(c *gin.Context) {
	var folderID *uint
	rootOnly := false

	if raw := c.Query("folder_id"); raw != "" {
		if raw == "root" {
			rootOnly = true
		} else {
			parsed, err := strconv.ParseUint(raw, 10, 32)
			if err != nil || parsed == 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "folder_id must be a positive number or 'root'"})
				return
			}
			id := uint(parsed)
			folderID = &id
		}
	}

	media, err := h.mediaService.List(folderID, rootOnly)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"media": media})
}

// GetMedia returns one media row with presigned download URLs
// GET /media/:id
func (h *MediaHandler) GetMedia(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	media, err := h.mediaService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	url, thumbURL, err := h.mediaService.DownloadURL(c.Request.Context(), media)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"media":     media,
		"url":       url,
		"thumb_url": thumbURL,
	})
}

// UpdateMedia renames, recaptions, or moves a media row
// PUT /admin/media/:id
func (h *MediaHandler) UpdateMedia(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input struct {
		Filename *string `json:"filename"`
		AltText  *string `json:"alt_text"`
		FolderID *uint   `json:"folder_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	media, err := h.mediaService.UpdateMetadata(id, services.UpdateMetadataInput{
		Filename: input.Filename,
		AltText:  input.AltText,
		FolderID: input.FolderID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, media)
}

// DeleteMedia removes stored objects, the row, and its gallery associations
// DELETE /admin/media/:id
func (h *MediaHandler) DeleteMedia(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.mediaService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "media deleted"})
}
