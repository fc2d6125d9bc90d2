package models

import "time"

// CareType is the closed set of recurring care activities.
type CareType string

const (
	CareWatering    CareType = "WATERING"
	CareFertilizing CareType = "FERTILIZING"
	CareRepotting   CareType = "REPOTTING"
)

var CareTypes = []CareType{CareWatering, CareFertilizing, CareRepotting}

func (t CareType) Valid() bool {
	for _, ct := range CareTypes {
		if t == ct {
			return true
		}
	}
	return false
}

// IndividualPlant is a houseplant tracked on its own, outside the
// seed-batch lifecycle. Deleting a plant removes its care schedules
// and care events.
type IndividualPlant struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"not null;index" json:"user_id"`
	CommonName     string    `gorm:"size:100;not null" json:"common_name"`
	ScientificName string    `gorm:"size:150" json:"scientific_name"`
	Location       string    `gorm:"size:100" json:"location"`
	PhotoURL       string    `gorm:"size:500" json:"photo_url"`
	Notes          string    `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
}

// CareSchedule is a recurring interval for one care type. A plant has
// at most one schedule per care type; setting a new one replaces the
// old row entirely.
type CareSchedule struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	PlantID       uint      `gorm:"not null;index" json:"plant_id"`
	CareType      CareType  `gorm:"size:20;not null" json:"care_type"`
	FrequencyDays int       `gorm:"not null" json:"frequency_days"`
	CreatedAt     time.Time `json:"created_at"`
}

// CareEvent logs that a care activity happened. It references the
// plant, not the schedule, so replacing a schedule never orphans
// history.
type CareEvent struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	PlantID       uint      `gorm:"not null;index" json:"plant_id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	CareType      CareType  `gorm:"size:20;not null" json:"care_type"`
	EventDate     time.Time `gorm:"not null;index" json:"event_date"`
	Notes         string    `gorm:"type:text" json:"notes"`
	PhotoFilename string    `gorm:"size:255" json:"photo_filename"`
	CreatedAt     time.Time `json:"created_at"`
}
