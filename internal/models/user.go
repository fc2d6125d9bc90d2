package models

import "time"

// User is one of the fixed household accounts. Users are seeded, never
// deleted.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:50;not null;uniqueIndex" json:"name"`
	DisplayColor string    `gorm:"size:7;default:'#648655'" json:"display_color"`
	PINHash      string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
