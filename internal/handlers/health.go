package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheck answers liveness probes. It touches no dependencies, so a 200
// only means the process is up, not that the database is reachable.
func HealthCheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   "mediavault",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
