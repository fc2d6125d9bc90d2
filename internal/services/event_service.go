package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/plantlady/plantlady-api/internal/models"
	"gorm.io/gorm"
)

var (
	ErrBatchNotFound    = errors.New("plant batch not found")
	ErrEventNotFound    = errors.New("event not found")
	ErrInvalidEventType = errors.New("invalid event type")
)

// EventService is the append-only milestone log per plant batch.
type EventService struct {
	db *gorm.DB
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{db: db}
}

// Append records a milestone event for a batch. The event date is
// accepted as-is: future dates, repeated types and out-of-order
// timestamps are all allowed, since the log stores client-supplied
// history.
func (s *EventService) Append(batchID, userID uint, eventType string, eventDate time.Time, notes string) (*models.Event, error) {
	var batch models.PlantBatch
	if err := s.db.First(&batch, batchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBatchNotFound
		}
		return nil, fmt.Errorf("failed to load batch: %w", err)
	}

	et := models.EventType(eventType)
	if !et.Valid() {
		return nil, ErrInvalidEventType
	}

	event := models.Event{
		BatchID:   batchID,
		UserID:    userID,
		EventType: et,
		EventDate: eventDate,
		Notes:     notes,
	}

	if err := s.db.Create(&event).Error; err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return &event, nil
}

// Timeline returns all events for a batch in chronological order,
// ascending by event date with ties broken by id.
func (s *EventService) Timeline(batchID uint) ([]models.Event, error) {
	var batch models.PlantBatch
	if err := s.db.First(&batch, batchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBatchNotFound
		}
		return nil, fmt.Errorf("failed to load batch: %w", err)
	}

	var events []models.Event
	if err := s.db.Where("batch_id = ?", batchID).Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}

	sortTimeline(events)
	return events, nil
}

// List returns events matching the given filters, newest first.
// A zero filter value means "any". An unknown event type filter is
// rejected rather than silently matching nothing.
func (s *EventService) List(batchID, userID uint, eventType string, limit, offset int) ([]models.Event, error) {
	query := s.db.Model(&models.Event{})

	if batchID != 0 {
		query = query.Where("batch_id = ?", batchID)
	}
	if userID != 0 {
		query = query.Where("user_id = ?", userID)
	}
	if eventType != "" {
		if !models.EventType(eventType).Valid() {
			return nil, ErrInvalidEventType
		}
		query = query.Where("event_type = ?", eventType)
	}

	var events []models.Event
	err := query.Order("event_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// Get returns a single event by id.
func (s *EventService) Get(eventID uint) (*models.Event, error) {
	var event models.Event
	if err := s.db.First(&event, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to load event: %w", err)
	}
	return &event, nil
}

// Update corrects an event's type, date or notes. Identity, batch and
// author never change, so dependent photos stay batch-consistent.
func (s *EventService) Update(eventID uint, eventType string, eventDate time.Time, notes string) (*models.Event, error) {
	event, err := s.Get(eventID)
	if err != nil {
		return nil, err
	}

	et := models.EventType(eventType)
	if !et.Valid() {
		return nil, ErrInvalidEventType
	}

	event.EventType = et
	event.EventDate = eventDate
	event.Notes = notes

	if err := s.db.Save(event).Error; err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	return event, nil
}

// Delete removes an event. Photos referencing it are detached
// (event_id set to NULL) in the same transaction; they remain on the
// batch.
func (s *EventService) Delete(eventID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.First(&event, eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return fmt.Errorf("failed to load event: %w", err)
		}

		if err := tx.Model(&models.Photo{}).Where("event_id = ?", eventID).
			Update("event_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach photos: %w", err)
		}

		if err := tx.Delete(&event).Error; err != nil {
			return fmt.Errorf("failed to delete event: %w", err)
		}
		return nil
	})
}

// DeriveStatus returns the lifecycle status implied by a batch's event
// history: the type of the latest non-observation event. Status is
// never stored; it is always recomputed from the log. The second
// return is false when no status-bearing event exists yet.
func DeriveStatus(events []models.Event) (models.EventType, bool) {
	sorted := make([]models.Event, len(events))
	copy(sorted, events)
	sortTimeline(sorted)

	var status models.EventType
	found := false
	for _, e := range sorted {
		if e.EventType == models.EventObservation {
			continue
		}
		status = e.EventType
		found = true
	}
	return status, found
}

// sortTimeline orders events ascending by event date, ties broken by
// id ascending (insertion order).
func sortTimeline(events []models.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].EventDate.Equal(events[j].EventDate) {
			return events[i].ID < events[j].ID
		}
		return events[i].EventDate.Before(events[j].EventDate)
	})
}
