package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mediavault/mediavault/internal/config"
	"github.com/mediavault/mediavault/internal/handlers"
	"github.com/mediavault/mediavault/internal/middleware"
	"github.com/mediavault/mediavault/internal/session"
	"github.com/mediavault/mediavault/internal/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps carries the request-scoped dependencies injected into every handler.
type Deps struct {
	DB       *gorm.DB
	Store    *storage.DiskStore
	Sessions *session.Store
	Log      *zap.SugaredLogger
	Cfg      config.Config
}

func New(d Deps) *gin.Engine {
	r := gin.Default()

	// Credentialed CORS toward the configured front-end origins.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     d.Cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authHandler := &handlers.AuthHandler{DB: d.DB, Sessions: d.Sessions, Log: d.Log, Cfg: d.Cfg}
	documents := &handlers.DocumentsHandler{DB: d.DB, Store: d.Store, Log: d.Log, Cfg: d.Cfg}
	music := &handlers.MusicHandler{DB: d.DB, Store: d.Store, Log: d.Log, Cfg: d.Cfg}
	videos := &handlers.VideosHandler{DB: d.DB, Store: d.Store, Log: d.Log, Cfg: d.Cfg}
	games := &handlers.GamesHandler{DB: d.DB, Log: d.Log}
	dashboard := &handlers.DashboardHandler{DB: d.DB, Log: d.Log, Cfg: d.Cfg}
	search := &handlers.SearchHandler{DB: d.DB, Log: d.Log}
	profile := &handlers.ProfileHandler{DB: d.DB, Store: d.Store, Sessions: d.Sessions, Log: d.Log, Cfg: d.Cfg}

	// Uploaded binaries are referenced by relative path from listings and
	// served directly, as the client players expect. There is no session
	// check on this mount: each stored path carries a 128-bit random prefix
	// and listings only ever reveal a path to its owner, so the URL itself
	// is the access capability.
	r.Static("/uploads", d.Cfg.UploadDir)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.AuthMiddleware(d.Sessions), authHandler.Me)
		}

		protected := api.Group("", middleware.AuthMiddleware(d.Sessions))
		{
			protected.GET("/documents", documents.List)
			protected.POST("/documents", documents.Create)
			protected.DELETE("/documents", documents.Delete)
			protected.GET("/documents/:id/download", documents.Download)

			protected.GET("/music", music.List)
			protected.POST("/music", music.Create)
			protected.DELETE("/music", music.Delete)

			protected.GET("/videos", videos.List)
			protected.POST("/videos", videos.Create)
			protected.DELETE("/videos", videos.Delete)

			protected.GET("/games", games.List)
			protected.POST("/games", games.Create)
			protected.DELETE("/games", games.Delete)

			protected.GET("/dashboard", dashboard.Get)
			protected.GET("/search", search.Search)

			protected.GET("/profile", profile.Get)
			protected.PUT("/profile", profile.Update)
			protected.POST("/profile/image", profile.UploadImage)
		}
	}

	return r
}
