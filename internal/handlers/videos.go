package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mediavault/mediavault/internal/config"
	"github.com/mediavault/mediavault/internal/media"
	"github.com/mediavault/mediavault/internal/storage"
	"github.com/mediavault/mediavault/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type VideosHandler struct {
	DB    *gorm.DB
	Store *storage.DiskStore
	Log   *zap.SugaredLogger
	Cfg   config.Config
}

func (h *VideosHandler) List(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Unauthorized"})
		return
	}

	videos, err := media.ListVideos(h.DB, userID)

	if err != nil {
		h.Log.Errorw("failed to list videos", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch videos"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "data": videos})
}

func (h *VideosHandler) Create(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Unauthorized"})
		return
	}

	title := ctx.PostForm("title")
	header, fileErr := ctx.FormFile("file")

	if fileErr != nil || title == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Missing required fields"})
		return
	}

	// Duration is reported by the client player; 0 when absent.
	duration, _ := strconv.Atoi(ctx.PostForm("duration"))

	file, err := header.Open()

	if err != nil {
		h.Log.Errorw("failed to open uploaded file", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	err = media.SaveUpload(h.DB, h.Store, h.Log, media.UploadInput{
		OwnerID:      userID,
		Kind:         media.KindVideo,
		Title:        title,
		Duration:     duration,
		Filename:     header.Filename,
		ContentType:  header.Header.Get("Content-Type"),
		Size:         header.Size,
		Data:         file,
		AllowedTypes: media.AllowedTypes(media.KindVideo, h.Cfg.StrictUploadTypes),
	})

	if err != nil {
		writeUploadError(ctx, err, "Failed to upload video")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "message": "Video uploaded successfully"})
}

func (h *VideosHandler) Delete(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Unauthorized"})
		return
	}

	id, ok := idQueryParam(ctx, "Video ID is required")
	if !ok {
		return
	}

	if err := media.DeleteVideo(h.DB, h.Store, h.Log, id, userID); err != nil {
		if errors.Is(err, media.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Video not found or access denied"})
			return
		}
		h.Log.Errorw("failed to delete video", "id", id, "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to delete video"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "message": "Video deleted successfully"})
}
