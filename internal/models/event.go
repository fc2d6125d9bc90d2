package models

import "time"

// EventType is the closed set of milestone events a batch can log.
// Unknown values are rejected at every boundary, never stored.
type EventType string

const (
	EventSeeded       EventType = "SEEDED"
	EventGerminated   EventType = "GERMINATED"
	EventTransplanted EventType = "TRANSPLANTED"
	EventFirstFlower  EventType = "FIRST_FLOWER"
	EventMature       EventType = "MATURE"
	EventHarvested    EventType = "HARVESTED"
	EventGivenAway    EventType = "GIVEN_AWAY"
	EventTraded       EventType = "TRADED"
	EventDied         EventType = "DIED"
	EventObservation  EventType = "OBSERVATION"
)

var EventTypes = []EventType{
	EventSeeded,
	EventGerminated,
	EventTransplanted,
	EventFirstFlower,
	EventMature,
	EventHarvested,
	EventGivenAway,
	EventTraded,
	EventDied,
	EventObservation,
}

func (t EventType) Valid() bool {
	for _, et := range EventTypes {
		if t == et {
			return true
		}
	}
	return false
}

// Event is an immutable milestone attached to one batch, authored by
// one user. The ordered sequence of events per batch is the lifecycle
// history; there is no stored status field.
type Event struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BatchID   uint      `gorm:"not null;index" json:"batch_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	EventType EventType `gorm:"size:20;not null" json:"event_type"`
	EventDate time.Time `gorm:"not null;index" json:"event_date"`
	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}
