package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/appdotbuilder/humanities-cms-sub000/internal/services"
	"github.com/appdotbuilder/humanities-cms-sub000/pkg/validation"
)

type GalleryHandler struct {
	galleryService *services.GalleryService
}

func NewGalleryHandler(galleryService *services.GalleryService) *GalleryHandler {
	return &GalleryHandler{galleryService: galleryService}
}

// CreateGallery creates an empty gallery container
// POST /admin/galleries
func (h *GalleryHandler) CreateGallery(c *gin.Context) {
	var input struct {
		Title       string `json:"title" binding:"required,min=1,max=255"`
		Slug        string `json:"slug"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "gallery title is required"})
		return
	}

	slug := input.Slug
	if slug == "" {
		slug = validation.Slugify(input.Title)
	}
	if !validation.ValidateSlug(slug) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid slug"})
		return
	}

	gallery, err := h.galleryService.CreateGallery(validation.SanitizeString(input.Title), slug, validation.SanitizeString(input.Description))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gallery)
}

// ListGalleries returns all galleries
// GET /galleries
func (h *GalleryHandler) ListGalleries(c *gin.Context) {
	galleries, err := h.galleryService.ListGalleries()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"galleries": galleries})
}

// GetGallery returns one gallery with its images in display order
// GET /galleries/:id
func (h *GalleryHandler) GetGallery(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	gallery, err := h.galleryService.GetGallery(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gallery)
}

// UpdateGallery changes gallery metadata
// PUT /admin/galleries/:id
func (h *GalleryHandler) UpdateGallery(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input struct {
		Title       *string `json:"title"`
		Slug        *string `json:"slug"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Slug != nil && !validation.ValidateSlug(*input.Slug) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid slug"})
		return
	}

	gallery, err := h.galleryService.UpdateGallery(id, input.Title, input.Slug, input.Description)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gallery)
}

// DeleteGallery removes a gallery and its association rows
// DELETE /admin/galleries/:id
func (h *GalleryHandler) DeleteGallery(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.galleryService.DeleteGallery(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "gallery deleted"})
}

// AddImage places media inside a gallery
// POST /admin/galleries/:id/images
func (h *GalleryHandler) AddImage(c *gin.Context) {
	galleryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input struct {
		MediaID   uint    `json:"media_id" binding:"required"`
		Caption   *string `json:"caption"`
		SortOrder int     `json:"sort_order"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "media_id is required"})
		return
	}

	image, err := h.galleryService.AddImage(galleryID, input.MediaID, input.Caption, input.SortOrder)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, image)
}

// RemoveImage deletes one association row; the media row stays
// DELETE /admin/gallery-images/:id
func (h *GalleryHandler) RemoveImage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.galleryService.RemoveImage(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "image removed from gallery"})
}

// ReorderImages applies a batch of sort positions atomically
// PUT /admin/galleries/:id/images/order
func (h *GalleryHandler) ReorderImages(c *gin.Context) {
	galleryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input struct {
		Entries []services.ReorderEntry `json:"entries" binding:"required,dive"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "entries are required"})
		return
	}

	if err := h.galleryService.Reorder(galleryID, input.Entries); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "gallery reordered"})
}

// UpdateCaption changes one association row's caption; null clears it
// PUT /admin/gallery-images/:id/caption
func (h *GalleryHandler) UpdateCaption(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input struct {
		Caption *string `json:"caption"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	image, err := h.galleryService.UpdateCaption(id, input.Caption)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, image)
}
