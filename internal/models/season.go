package models

import "time"

// Season is a growing year. A season with batches or costs cannot be
// deleted.
type Season struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Year      int       `gorm:"not null;uniqueIndex" json:"year"`
	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}
