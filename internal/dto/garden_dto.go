package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateVarietyRequest struct {
	CommonName      string `json:"common_name"`
	ScientificName  string `json:"scientific_name"`
	Category        string `json:"category"`
	FloweringSeason string `json:"flowering_season"`
	DaysToGerminate *int   `json:"days_to_germinate"`
	DaysToMature    *int   `json:"days_to_mature"`
	Notes           string `json:"notes"`
}

type CreateBatchRequest struct {
	VarietyID      uint       `json:"variety_id"`
	SeasonID       uint       `json:"season_id"`
	SeedsCount     *int       `json:"seeds_count"`
	Packets        *int       `json:"packets"`
	Source         string     `json:"source"`
	Location       string     `json:"location"`
	StartDate      *time.Time `json:"start_date"`
	TransplantDate *time.Time `json:"transplant_date"`
	RepeatNextYear string     `json:"repeat_next_year"`
	OutcomeNotes   string     `json:"outcome_notes"`
}

type CreateEventRequest struct {
	BatchID   uint      `json:"batch_id"`
	EventType string    `json:"event_type"`
	EventDate time.Time `json:"event_date"`
	Notes     string    `json:"notes"`
}

type UpdateEventRequest struct {
	EventType string    `json:"event_type"`
	EventDate time.Time `json:"event_date"`
	Notes     string    `json:"notes"`
}

type CreateSeasonRequest struct {
	Year  int    `json:"year"`
	Notes string `json:"notes"`
}

type CreateCostRequest struct {
	SeasonID  uint            `json:"season_id"`
	ItemName  string          `json:"item_name"`
	Cost      decimal.Decimal `json:"cost"`
	Quantity  *int            `json:"quantity"`
	Category  string          `json:"category"`
	IsOneTime *bool           `json:"is_one_time"`
	Notes     string          `json:"notes"`
}

type CreateDistributionRequest struct {
	BatchID   uint      `json:"batch_id"`
	Recipient string    `json:"recipient"`
	Quantity  *int      `json:"quantity"`
	Type      string    `json:"type"`
	Date      time.Time `json:"date"`
	Notes     string    `json:"notes"`
}

type CreatePlantRequest struct {
	CommonName     string `json:"common_name"`
	ScientificName string `json:"scientific_name"`
	Location       string `json:"location"`
	Notes          string `json:"notes"`
}

type CreateScheduleRequest struct {
	CareType      string `json:"care_type"`
	FrequencyDays int    `json:"frequency_days"`
}

type CreateCareEventRequest struct {
	CareType  string    `json:"care_type"`
	EventDate time.Time `json:"event_date"`
	Notes     string    `json:"notes"`
}
