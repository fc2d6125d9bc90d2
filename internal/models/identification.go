package models

import (
	"time"

	"gorm.io/datatypes"
)

// Identification is a stored result from the vision identify service.
type Identification struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	UserID         uint           `gorm:"not null;index" json:"user_id"`
	CommonName     string         `gorm:"size:100;not null" json:"common_name"`
	ScientificName string         `gorm:"size:150" json:"scientific_name"`
	Description    string         `gorm:"type:text" json:"description"`
	Confidence     float64        `gorm:"not null" json:"confidence"`
	CareTips       datatypes.JSON `gorm:"type:jsonb" json:"care_tips"`
	CreatedAt      time.Time      `json:"created_at"`
}
