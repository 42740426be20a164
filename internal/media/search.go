package media

import (
	"strings"

	"github.com/mediavault/mediavault/internal/models"
	"gorm.io/gorm"
)

// SearchResult is one match, tagged with its kind. Artist is only set for
// music results.
type SearchResult struct {
	ID     uint   `json:"id"`
	Title  string `json:"title"`
	Type   string `json:"type"`
	Artist string `json:"artist,omitempty"`
}

// Search runs an owner-scoped, case-insensitive substring match against
// each kind's title (and the artist column for music) and concatenates the
// per-kind results. No ranking, de-duplication or cross-kind ordering is
// applied. A blank query returns an empty result set, not an error.
func Search(gdb *gorm.DB, ownerID uint, query string) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	results := []SearchResult{}

	if query == "" {
		return results, nil
	}

	pattern := "%" + strings.ToLower(query) + "%"

	var tracks []models.Track
	err := gdb.
		Where("owner_id = ? AND (LOWER(title) LIKE ? OR LOWER(artist) LIKE ?)", ownerID, pattern, pattern).
		Find(&tracks).Error
	if err != nil {
		return nil, err
	}
	for _, t := range tracks {
		results = append(results, SearchResult{ID: t.ID, Title: t.Title, Type: "music", Artist: t.Artist})
	}

	var videos []models.Video
	err = gdb.
		Where("owner_id = ? AND LOWER(title) LIKE ?", ownerID, pattern).
		Find(&videos).Error
	if err != nil {
		return nil, err
	}
	for _, v := range videos {
		results = append(results, SearchResult{ID: v.ID, Title: v.Title, Type: "video"})
	}

	var docs []models.Document
	err = gdb.
		Where("owner_id = ? AND LOWER(title) LIKE ?", ownerID, pattern).
		Find(&docs).Error
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		results = append(results, SearchResult{ID: d.ID, Title: d.Title, Type: "document"})
	}

	var games []models.Game
	err = gdb.
		Where("owner_id = ? AND LOWER(title) LIKE ?", ownerID, pattern).
		Find(&games).Error
	if err != nil {
		return nil, err
	}
	for _, g := range games {
		results = append(results, SearchResult{ID: g.ID, Title: g.Title, Type: "game"})
	}

	return results, nil
}
