package models

import "time"

// PlantBatch is one sowing or propagation effort, tracked through its
// lifecycle by milestone events. Deleting a batch removes its events,
// photos and distributions in the same transaction.
type PlantBatch struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	UserID    uint `gorm:"not null;index" json:"user_id"`
	VarietyID uint `gorm:"not null;index" json:"variety_id"`
	SeasonID  uint `gorm:"not null;index" json:"season_id"`

	SeedsCount *int   `json:"seeds_count"`
	Packets    *int   `json:"packets"`
	Source     string `gorm:"size:100" json:"source"`
	Location   string `gorm:"size:100" json:"location"`

	StartDate      *time.Time `json:"start_date"`
	TransplantDate *time.Time `json:"transplant_date"`
	RepeatNextYear string     `gorm:"size:10" json:"repeat_next_year"` // yes, no, maybe
	OutcomeNotes   string     `gorm:"type:text" json:"outcome_notes"`
	CreatedAt      time.Time  `json:"created_at"`
}
