package media

import (
	"github.com/mediavault/mediavault/internal/models"
	"gorm.io/gorm"
)

type FileCounts struct {
	Documents int64 `json:"documents"`
	Music     int64 `json:"music"`
	Videos    int64 `json:"videos"`
	Games     int64 `json:"games"`
}

type SpaceByType struct {
	Documents int64 `json:"documents"`
	Music     int64 `json:"music"`
	Videos    int64 `json:"videos"`
}

// Usage is the dashboard payload. TotalSpace is the configured quota, used
// for display only. Games count toward file_counts but carry no bytes.
type Usage struct {
	TotalSpace  int64       `json:"total_space"`
	UsedSpace   int64       `json:"used_space"`
	FileCounts  FileCounts  `json:"file_counts"`
	SpaceByType SpaceByType `json:"space_by_type"`
}

// Report re-scans the kind tables for one owner. No caching; reads between
// concurrent writes may observe a partial state, never corrupt data.
func Report(gdb *gorm.DB, ownerID uint, quotaBytes int64) (*Usage, error) {
	usage := &Usage{TotalSpace: quotaBytes}

	var err error

	if usage.SpaceByType.Documents, err = sumFilesize(gdb, &models.Document{}, ownerID); err != nil {
		return nil, err
	}
	if usage.SpaceByType.Music, err = sumFilesize(gdb, &models.Track{}, ownerID); err != nil {
		return nil, err
	}
	if usage.SpaceByType.Videos, err = sumFilesize(gdb, &models.Video{}, ownerID); err != nil {
		return nil, err
	}

	usage.UsedSpace = usage.SpaceByType.Documents + usage.SpaceByType.Music + usage.SpaceByType.Videos

	if usage.FileCounts.Documents, err = countRows(gdb, &models.Document{}, ownerID); err != nil {
		return nil, err
	}
	if usage.FileCounts.Music, err = countRows(gdb, &models.Track{}, ownerID); err != nil {
		return nil, err
	}
	if usage.FileCounts.Videos, err = countRows(gdb, &models.Video{}, ownerID); err != nil {
		return nil, err
	}
	if usage.FileCounts.Games, err = countRows(gdb, &models.Game{}, ownerID); err != nil {
		return nil, err
	}

	return usage, nil
}

func sumFilesize(gdb *gorm.DB, model interface{}, ownerID uint) (int64, error) {
	var total int64
	err := gdb.Model(model).
		Where("owner_id = ?", ownerID).
		Select("COALESCE(SUM(filesize), 0)").
		Scan(&total).Error
	return total, err
}

func countRows(gdb *gorm.DB, model interface{}, ownerID uint) (int64, error) {
	var count int64
	err := gdb.Model(model).Where("owner_id = ?", ownerID).Count(&count).Error
	return count, err
}
