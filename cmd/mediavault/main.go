package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/mediavault/mediavault/db"
	"github.com/mediavault/mediavault/internal/config"
	"github.com/mediavault/mediavault/internal/router"
	"github.com/mediavault/mediavault/internal/session"
	"github.com/mediavault/mediavault/internal/storage"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg := config.Load()

	var zapLogger *zap.Logger
	var err error

	if cfg.Env == "production" {
		zapLogger, err = zap.NewProduction()
	} else {
		zapLogger, err = zap.NewDevelopment()
	}

	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zapLogger.Sync()

	logger := zapLogger.Sugar()

	gdb, err := db.Connect(cfg.DatabaseURL)

	if err != nil {
		logger.Fatalw("failed to connect to database", "error", err)
	}

	if err := db.Migrate(gdb); err != nil {
		logger.Fatalw("failed to migrate database", "error", err)
	}

	store := storage.NewDiskStore(cfg.UploadDir)
	sessions := session.NewStore(gdb, cfg.SessionTTL)

	r := router.New(router.Deps{
		DB:       gdb,
		Store:    store,
		Sessions: sessions,
		Log:      logger,
		Cfg:      cfg,
	})

	logger.Infow("starting server", "port", cfg.Port)

	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatalw("failed to start server", "error", err)
	}
}
