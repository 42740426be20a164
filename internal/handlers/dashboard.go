package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mediavault/mediavault/internal/config"
	"github.com/mediavault/mediavault/internal/media"
	"github.com/mediavault/mediavault/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type DashboardHandler struct {
	DB  *gorm.DB
	Log *zap.SugaredLogger
	Cfg config.Config
}

func (h *DashboardHandler) Get(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Unauthorized"})
		return
	}

	usage, err := media.Report(h.DB, userID, h.Cfg.QuotaBytes)

	if err != nil {
		h.Log.Errorw("failed to compute storage usage", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch dashboard data"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "data": usage})
}
