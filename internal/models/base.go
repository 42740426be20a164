package models

import "time"

// BaseModel is used by media rows instead of gorm.Model: deletes are hard
// deletes (the row and its file are gone together), so no DeletedAt column.
type BaseModel struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
}
