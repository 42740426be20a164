package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mediavault/mediavault/internal/media"
)

// idQueryParam reads the ?id= parameter used by the delete endpoints.
func idQueryParam(ctx *gin.Context, missingMsg string) (uint, bool) {
	raw := ctx.Query("id")

	if raw == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": missingMsg})
		return 0, false
	}

	id, err := strconv.ParseUint(raw, 10, 32)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid ID"})
		return 0, false
	}

	return uint(id), true
}

// writeUploadError maps media-layer upload failures onto the JSON envelope.
func writeUploadError(ctx *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, media.ErrEmptyFile):
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Uploaded file is empty"})
	case errors.Is(err, media.ErrInvalidFileType):
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid file type"})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": fallback})
	}
}
