package models

type Video struct {
	BaseModel

	OwnerID  uint   `gorm:"not null;index" json:"owner_id"`
	Title    string `gorm:"not null" json:"title"`
	FilePath string `gorm:"not null" json:"file_path"`
	Filesize int64  `gorm:"not null;default:0" json:"filesize"`
	Duration int    `json:"duration"` // seconds, 0 when unknown
}
