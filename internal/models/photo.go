package models

import "time"

// Photo records metadata for an image stored in the blob store. The
// filename is the opaque join key; bytes never live in the database.
// An event reference, when set, must point at an event on the same
// batch.
type Photo struct {
	ID      uint  `gorm:"primaryKey" json:"id"`
	BatchID uint  `gorm:"not null;index" json:"batch_id"`
	EventID *uint `gorm:"index" json:"event_id"`
	UserID  uint  `gorm:"not null;index" json:"user_id"`

	Filename  string     `gorm:"size:255;not null;uniqueIndex" json:"filename"`
	Caption   string     `gorm:"type:text" json:"caption"`
	TakenAt   *time.Time `json:"taken_at"`
	CreatedAt time.Time  `json:"created_at"`
}
