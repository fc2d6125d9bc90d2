package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/plantlady/plantlady-api/internal/models"
	"gorm.io/gorm"
)

var (
	ErrPlantNotFound     = errors.New("plant not found")
	ErrCareEventNotFound = errors.New("care event not found")
	ErrInvalidCareType   = errors.New("invalid care type")
)

// CareService manages individually tracked houseplants, their
// recurring care schedules, and the care event log.
type CareService struct {
	db *gorm.DB
}

func NewCareService(db *gorm.DB) *CareService {
	return &CareService{db: db}
}

// CareStatus is the derived due state for one schedule. DaysSince is
// nil when no matching care event was ever logged, which is distinct
// from "0 days overdue"; a never-cared-for schedule is always due.
type CareStatus struct {
	Schedule  models.CareSchedule `json:"schedule"`
	LastEvent *models.CareEvent   `json:"last_event"`
	DaysSince *int                `json:"days_since"`
	Overdue   bool                `json:"overdue"`
}

// --- Plants ---

func (s *CareService) CreatePlant(userID uint, plant *models.IndividualPlant) (*models.IndividualPlant, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	plant.ID = 0
	plant.UserID = userID
	if err := s.db.Create(plant).Error; err != nil {
		return nil, fmt.Errorf("failed to create plant: %w", err)
	}
	return plant, nil
}

func (s *CareService) ListPlants(userID uint, limit, offset int) ([]models.IndividualPlant, error) {
	var plants []models.IndividualPlant
	err := s.db.Where("user_id = ?", userID).
		Limit(limit).
		Offset(offset).
		Find(&plants).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list plants: %w", err)
	}
	return plants, nil
}

func (s *CareService) GetPlant(plantID uint) (*models.IndividualPlant, error) {
	var plant models.IndividualPlant
	if err := s.db.First(&plant, plantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlantNotFound
		}
		return nil, fmt.Errorf("failed to load plant: %w", err)
	}
	return &plant, nil
}

func (s *CareService) UpdatePlant(plantID uint, update *models.IndividualPlant) (*models.IndividualPlant, error) {
	plant, err := s.GetPlant(plantID)
	if err != nil {
		return nil, err
	}

	plant.CommonName = update.CommonName
	plant.ScientificName = update.ScientificName
	plant.Location = update.Location
	plant.Notes = update.Notes

	if err := s.db.Save(plant).Error; err != nil {
		return nil, fmt.Errorf("failed to update plant: %w", err)
	}
	return plant, nil
}

// DeletePlant removes a plant with its schedules and care events in
// one transaction.
func (s *CareService) DeletePlant(plantID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var plant models.IndividualPlant
		if err := tx.First(&plant, plantID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPlantNotFound
			}
			return fmt.Errorf("failed to load plant: %w", err)
		}

		if err := tx.Where("plant_id = ?", plantID).Delete(&models.CareSchedule{}).Error; err != nil {
			return fmt.Errorf("failed to delete schedules: %w", err)
		}
		if err := tx.Where("plant_id = ?", plantID).Delete(&models.CareEvent{}).Error; err != nil {
			return fmt.Errorf("failed to delete care events: %w", err)
		}
		if err := tx.Delete(&plant).Error; err != nil {
			return fmt.Errorf("failed to delete plant: %w", err)
		}
		return nil
	})
}

// --- Schedules ---

// UpsertSchedule replaces any existing schedule for the care type with
// a fresh row (delete-then-insert, new identity). Care history is
// unaffected since events reference the plant, not the schedule.
func (s *CareService) UpsertSchedule(plantID uint, careType string, frequencyDays int) (*models.CareSchedule, error) {
	if _, err := s.GetPlant(plantID); err != nil {
		return nil, err
	}

	ct := models.CareType(careType)
	if !ct.Valid() {
		return nil, ErrInvalidCareType
	}

	schedule := models.CareSchedule{
		PlantID:       plantID,
		CareType:      ct,
		FrequencyDays: frequencyDays,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("plant_id = ? AND care_type = ?", plantID, ct).
			Delete(&models.CareSchedule{}).Error; err != nil {
			return fmt.Errorf("failed to replace schedule: %w", err)
		}
		if err := tx.Create(&schedule).Error; err != nil {
			return fmt.Errorf("failed to create schedule: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (s *CareService) ListSchedules(plantID uint) ([]models.CareSchedule, error) {
	if _, err := s.GetPlant(plantID); err != nil {
		return nil, err
	}

	var schedules []models.CareSchedule
	if err := s.db.Where("plant_id = ?", plantID).Find(&schedules).Error; err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	return schedules, nil
}

// --- Care events ---

func (s *CareService) LogCareEvent(plantID, userID uint, careType string, eventDate time.Time, notes string) (*models.CareEvent, error) {
	if _, err := s.GetPlant(plantID); err != nil {
		return nil, err
	}

	ct := models.CareType(careType)
	if !ct.Valid() {
		return nil, ErrInvalidCareType
	}

	event := models.CareEvent{
		PlantID:   plantID,
		UserID:    userID,
		CareType:  ct,
		EventDate: eventDate,
		Notes:     notes,
	}
	if err := s.db.Create(&event).Error; err != nil {
		return nil, fmt.Errorf("failed to log care event: %w", err)
	}
	return &event, nil
}

func (s *CareService) ListCareEvents(plantID uint, limit, offset int) ([]models.CareEvent, error) {
	if _, err := s.GetPlant(plantID); err != nil {
		return nil, err
	}

	var events []models.CareEvent
	err := s.db.Where("plant_id = ?", plantID).
		Order("event_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list care events: %w", err)
	}
	return events, nil
}

// AttachCarePhoto records a stored photo filename on a care event.
func (s *CareService) AttachCarePhoto(plantID, eventID uint, filename string) (*models.CareEvent, error) {
	var event models.CareEvent
	err := s.db.Where("id = ? AND plant_id = ?", eventID, plantID).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCareEventNotFound
		}
		return nil, fmt.Errorf("failed to load care event: %w", err)
	}

	event.PhotoFilename = filename
	if err := s.db.Save(&event).Error; err != nil {
		return nil, fmt.Errorf("failed to attach photo: %w", err)
	}
	return &event, nil
}

// DueStatus derives, for each schedule on a plant, how long ago the
// matching care last happened and whether it is due again.
func (s *CareService) DueStatus(plantID uint, now time.Time) ([]CareStatus, error) {
	schedules, err := s.ListSchedules(plantID)
	if err != nil {
		return nil, err
	}

	var events []models.CareEvent
	if err := s.db.Where("plant_id = ?", plantID).Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to load care events: %w", err)
	}

	statuses := make([]CareStatus, 0, len(schedules))
	for _, schedule := range schedules {
		last := latestCareEvent(events, schedule.CareType)
		statuses = append(statuses, careStatus(schedule, last, now))
	}
	return statuses, nil
}

func latestCareEvent(events []models.CareEvent, careType models.CareType) *models.CareEvent {
	var last *models.CareEvent
	for i := range events {
		if events[i].CareType != careType {
			continue
		}
		if last == nil || events[i].EventDate.After(last.EventDate) {
			last = &events[i]
		}
	}
	return last
}

func careStatus(schedule models.CareSchedule, last *models.CareEvent, now time.Time) CareStatus {
	status := CareStatus{Schedule: schedule, LastEvent: last}
	if last == nil {
		// Never cared for: due, but with no "days since" to report.
		status.Overdue = true
		return status
	}

	days := int(now.Sub(last.EventDate).Hours() / 24)
	status.DaysSince = &days
	status.Overdue = days >= schedule.FrequencyDays
	return status
}
