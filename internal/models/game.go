package models

// Game is a link entry, not an uploaded binary, so it carries no file path
// or size and never counts toward used storage.
type Game struct {
	BaseModel

	OwnerID      uint   `gorm:"not null;index" json:"owner_id"`
	Title        string `gorm:"not null" json:"title"`
	URL          string `gorm:"not null" json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
	Description  string `json:"description"`
}
