package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mediavault/mediavault/internal/media"
	"github.com/mediavault/mediavault/internal/models"
	"github.com/mediavault/mediavault/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type GamesHandler struct {
	DB  *gorm.DB
	Log *zap.SugaredLogger
}

type CreateGameRequest struct {
	Title        string `json:"title" binding:"required"`
	URL          string `json:"url" binding:"required"`
	ThumbnailURL string `json:"thumbnail_url"`
	Description  string `json:"description"`
}

func (h *GamesHandler) List(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Unauthorized"})
		return
	}

	games, err := media.ListGames(h.DB, userID)

	if err != nil {
		h.Log.Errorw("failed to list games", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch games"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "data": games})
}

// Create records a game link. Games carry no binary and no filesize.
func (h *GamesHandler) Create(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Unauthorized"})
		return
	}

	var req CreateGameRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Title and URL are required"})
		return
	}

	game := models.Game{
		OwnerID:      userID,
		Title:        req.Title,
		URL:          req.URL,
		ThumbnailURL: req.ThumbnailURL,
		Description:  req.Description,
	}

	if err := h.DB.Create(&game).Error; err != nil {
		h.Log.Errorw("failed to create game", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to add game"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "message": "Game added successfully"})
}

func (h *GamesHandler) Delete(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Unauthorized"})
		return
	}

	id, ok := idQueryParam(ctx, "Game ID is required")
	if !ok {
		return
	}

	if err := media.DeleteGame(h.DB, id, userID); err != nil {
		if errors.Is(err, media.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Game not found or access denied"})
			return
		}
		h.Log.Errorw("failed to delete game", "id", id, "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to delete game"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "message": "Game deleted successfully"})
}
