package media

import (
	"errors"
	"fmt"

	"github.com/mediavault/mediavault/internal/models"
	"github.com/mediavault/mediavault/internal/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Listings are always owner-scoped and newest first. There is no server-side
// pagination; clients page locally.

func ListDocuments(gdb *gorm.DB, ownerID uint) ([]models.Document, error) {
	var docs []models.Document
	err := gdb.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&docs).Error
	return docs, err
}

func ListTracks(gdb *gorm.DB, ownerID uint) ([]models.Track, error) {
	var tracks []models.Track
	err := gdb.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&tracks).Error
	return tracks, err
}

func ListVideos(gdb *gorm.DB, ownerID uint) ([]models.Video, error) {
	var videos []models.Video
	err := gdb.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&videos).Error
	return videos, err
}

func ListGames(gdb *gorm.DB, ownerID uint) ([]models.Game, error) {
	var games []models.Game
	err := gdb.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&games).Error
	return games, err
}

// FindDocument resolves a document only when the owner matches. An absent
// row and a foreign row both come back as ErrNotFound.
func FindDocument(gdb *gorm.DB, id, ownerID uint) (*models.Document, error) {
	var doc models.Document
	if err := ownedFirst(gdb, &doc, id, ownerID); err != nil {
		return nil, err
	}
	return &doc, nil
}

func FindTrack(gdb *gorm.DB, id, ownerID uint) (*models.Track, error) {
	var track models.Track
	if err := ownedFirst(gdb, &track, id, ownerID); err != nil {
		return nil, err
	}
	return &track, nil
}

func FindVideo(gdb *gorm.DB, id, ownerID uint) (*models.Video, error) {
	var video models.Video
	if err := ownedFirst(gdb, &video, id, ownerID); err != nil {
		return nil, err
	}
	return &video, nil
}

// DeleteDocument removes the binary (best-effort) and then the row, scoped
// to the owner. Success requires that a row was actually deleted.
func DeleteDocument(gdb *gorm.DB, store *storage.DiskStore, log *zap.SugaredLogger, id, ownerID uint) error {
	doc, err := FindDocument(gdb, id, ownerID)
	if err != nil {
		return err
	}
	return deleteWithFile(gdb, store, log, &models.Document{}, doc.FilePath, id, ownerID)
}

func DeleteTrack(gdb *gorm.DB, store *storage.DiskStore, log *zap.SugaredLogger, id, ownerID uint) error {
	track, err := FindTrack(gdb, id, ownerID)
	if err != nil {
		return err
	}
	return deleteWithFile(gdb, store, log, &models.Track{}, track.FilePath, id, ownerID)
}

func DeleteVideo(gdb *gorm.DB, store *storage.DiskStore, log *zap.SugaredLogger, id, ownerID uint) error {
	video, err := FindVideo(gdb, id, ownerID)
	if err != nil {
		return err
	}
	return deleteWithFile(gdb, store, log, &models.Video{}, video.FilePath, id, ownerID)
}

// DeleteGame has no binary to remove.
func DeleteGame(gdb *gorm.DB, id, ownerID uint) error {
	res := gdb.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&models.Game{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete game: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func ownedFirst(gdb *gorm.DB, dest interface{}, id, ownerID uint) error {
	err := gdb.Where("id = ? AND owner_id = ?", id, ownerID).First(dest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// deleteWithFile removes the binary first; a failed removal is logged and
// the row deletion proceeds regardless.
func deleteWithFile(gdb *gorm.DB, store *storage.DiskStore, log *zap.SugaredLogger, model interface{}, filePath string, id, ownerID uint) error {
	if filePath != "" {
		if err := store.Remove(filePath); err != nil {
			log.Warnw("failed to remove file, deleting row anyway",
				"path", filePath,
				"error", err,
			)
		}
	}

	res := gdb.Where("id = ? AND owner_id = ?", id, ownerID).Delete(model)
	if res.Error != nil {
		return fmt.Errorf("failed to delete record: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
