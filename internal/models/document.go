package models

type Document struct {
	BaseModel

	OwnerID  uint   `gorm:"not null;index" json:"owner_id"`
	Title    string `gorm:"not null" json:"title"`
	FilePath string `gorm:"not null" json:"file_path"`
	FileType string `json:"file_type"`
	Filesize int64  `gorm:"not null;default:0" json:"filesize"`
}
