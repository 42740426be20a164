package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mediavault/mediavault/internal/config"
	"github.com/mediavault/mediavault/internal/media"
	"github.com/mediavault/mediavault/internal/storage"
	"github.com/mediavault/mediavault/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MusicHandler struct {
	DB    *gorm.DB
	Store *storage.DiskStore
	Log   *zap.SugaredLogger
	Cfg   config.Config
}

func (h *MusicHandler) List(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Unauthorized"})
		return
	}

	tracks, err := media.ListTracks(h.DB, userID)

	if err != nil {
		h.Log.Errorw("failed to list music", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch music"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "data": tracks})
}

func (h *MusicHandler) Create(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Unauthorized"})
		return
	}

	title := ctx.PostForm("title")
	artist := ctx.PostForm("artist")
	header, fileErr := ctx.FormFile("file")

	if fileErr != nil || title == "" || artist == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Missing required fields"})
		return
	}

	file, err := header.Open()

	if err != nil {
		h.Log.Errorw("failed to open uploaded file", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	err = media.SaveUpload(h.DB, h.Store, h.Log, media.UploadInput{
		OwnerID:      userID,
		Kind:         media.KindMusic,
		Title:        title,
		Artist:       artist,
		Filename:     header.Filename,
		ContentType:  header.Header.Get("Content-Type"),
		Size:         header.Size,
		Data:         file,
		AllowedTypes: media.AllowedTypes(media.KindMusic, h.Cfg.StrictUploadTypes),
	})

	if err != nil {
		writeUploadError(ctx, err, "Failed to upload music")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "message": "Music uploaded successfully"})
}

func (h *MusicHandler) Delete(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Unauthorized"})
		return
	}

	id, ok := idQueryParam(ctx, "Music ID is required")
	if !ok {
		return
	}

	if err := media.DeleteTrack(h.DB, h.Store, h.Log, id, userID); err != nil {
		if errors.Is(err, media.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Music not found or access denied"})
			return
		}
		h.Log.Errorw("failed to delete music", "id", id, "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to delete music"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "message": "Music deleted successfully"})
}
