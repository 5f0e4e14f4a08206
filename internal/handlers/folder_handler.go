package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/appdotbuilder/humanities-cms-sub000/internal/services"
	"github.com/appdotbuilder/humanities-cms-sub000/pkg/validation"
)

type FolderHandler struct {
	folderService *services.FolderService
}

func NewFolderHandler(folderService *services.FolderService) *FolderHandler {
	return &FolderHandler{folderService: folderService}
}

// CreateFolder handles folder creation
// POST /admin/folders
func (h *FolderHandler) CreateFolder(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required,min=1,max=255"`
		ParentID *uint  `json:"parent_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "folder name is required"})
		return
	}

	name := validation.SanitizeString(input.Name)
	if !validation.ValidateFolderName(name) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid folder name"})
		return
	}
	if input.ParentID != nil && *input.ParentID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "parent_id must be a positive number"})
		return
	}

	folder, err := h.folderService.Create(name, input.ParentID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, folder)
}

// ListFolders returns all folders; clients rebuild the tree from parent_id
// GET /folders
func (h *FolderHandler) ListFolders(c *gin.Context) {
	folders, err := h.folderService.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"folders": folders})
}

// GetFolder returns a single folder with its media count
// GET /folders/:id
func (h *FolderHandler) GetFolder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	folder, err := h.folderService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, folder)
}

// UpdateFolder renames and/or re-parents a folder
// PUT /admin/folders/:id
func (h *FolderHandler) UpdateFolder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input struct {
		Name     *string `json:"name"`
		ParentID *uint   `json:"parent_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Name != nil {
		name := validation.SanitizeString(*input.Name)
		if !validation.ValidateFolderName(name) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid folder name"})
			return
		}
		input.Name = &name
	}

	folder, err := h.folderService.Update(id, services.UpdateFolderInput{
		Name:     input.Name,
		ParentID: input.ParentID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, folder)
}

// DeleteFolder removes a leaf folder, promoting its media to the parent
// DELETE /admin/folders/:id
func (h *FolderHandler) DeleteFolder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.folderService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "folder deleted"})
}
