package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mediavault/mediavault/internal/media"
	"github.com/mediavault/mediavault/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SearchHandler struct {
	DB  *gorm.DB
	Log *zap.SugaredLogger
}

func (h *SearchHandler) Search(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Unauthorized"})
		return
	}

	results, err := media.Search(h.DB, userID, ctx.Query("query"))

	if err != nil {
		h.Log.Errorw("search failed", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to perform search"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "data": results})
}
