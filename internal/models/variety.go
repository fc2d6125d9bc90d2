package models

import "time"

// PlantVariety is a catalog entry for a kind of plant. Common names
// are globally unique.
type PlantVariety struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	CommonName      string    `gorm:"size:100;not null;uniqueIndex" json:"common_name"`
	ScientificName  string    `gorm:"size:150" json:"scientific_name"`
	Category        string    `gorm:"size:50;not null" json:"category"`
	FloweringSeason string    `gorm:"size:50" json:"flowering_season"`
	DaysToGerminate *int      `json:"days_to_germinate"`
	DaysToMature    *int      `json:"days_to_mature"`
	Notes           string    `gorm:"type:text" json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
}
