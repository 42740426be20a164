package models

type Track struct {
	BaseModel

	OwnerID  uint   `gorm:"not null;index" json:"owner_id"`
	Title    string `gorm:"not null" json:"title"`
	Artist   string `gorm:"not null" json:"artist"`
	FilePath string `gorm:"not null" json:"file_path"`
	Filesize int64  `gorm:"not null;default:0" json:"filesize"`
}

// TableName keeps the table named after the content kind.
func (Track) TableName() string {
	return "music"
}
