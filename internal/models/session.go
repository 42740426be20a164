package models

import (
	"time"

	"gorm.io/datatypes"
)

// Session is a server-side session row keyed by the opaque cookie token.
// Data holds the cached {id, name, email} snapshot handed to handlers.
type Session struct {
	Token     string `gorm:"primaryKey;size:64"`
	UserID    uint   `gorm:"not null;index"`
	Data      datatypes.JSON
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time
}
