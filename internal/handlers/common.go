package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/appdotbuilder/humanities-cms-sub000/internal/services"
)

// respondServiceError maps the typed service errors onto HTTP statuses.
// Anything unrecognized is a storage failure and surfaces as a 500 without
// leaking internals.
func respondServiceError(c *gin.Context, err error) {
	var notFound *services.NotFoundError
	if errors.As(err, &notFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
		return
	}

	var mismatch *services.GalleryMismatchError
	if errors.As(err, &mismatch) {
		c.JSON(http.StatusConflict, gin.H{"error": mismatch.Error()})
		return
	}

	switch {
	case errors.Is(err, services.ErrInvalidParent):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrFolderHasChildren):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("ERROR: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// parseIDParam reads a positive integer path parameter.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a positive number"})
		return 0, false
	}
	return uint(id), true
}
