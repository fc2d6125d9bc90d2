package services

import (
	"testing"
	"time"

	"github.com/plantlady/plantlady-api/internal/models"
)

func TestSortTimeline(t *testing.T) {
	d1 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

	events := []models.Event{
		{ID: 4, EventDate: d2, EventType: models.EventGerminated},
		{ID: 2, EventDate: d1, EventType: models.EventSeeded},
		{ID: 3, EventDate: d2, EventType: models.EventObservation},
	}

	sortTimeline(events)

	gotIDs := []uint{events[0].ID, events[1].ID, events[2].ID}
	// Ascending by date, same-date ties broken by id.
	wantIDs := []uint{2, 3, 4}
	for i := range wantIDs {
		if gotIDs[i] != wantIDs[i] {
			t.Fatalf("order = %v, want %v", gotIDs, wantIDs)
		}
	}
}

func TestDeriveStatus(t *testing.T) {
	d := func(day int) time.Time {
		return time.Date(2026, 4, day, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name   string
		events []models.Event
		want   models.EventType
		found  bool
	}{
		{"no events", nil, "", false},
		{
			"observations only carry no status",
			[]models.Event{{ID: 1, EventDate: d(1), EventType: models.EventObservation}},
			"", false,
		},
		{
			"latest non-observation wins",
			[]models.Event{
				{ID: 1, EventDate: d(1), EventType: models.EventSeeded},
				{ID: 2, EventDate: d(5), EventType: models.EventGerminated},
				{ID: 3, EventDate: d(9), EventType: models.EventObservation},
			},
			models.EventGerminated, true,
		},
		{
			"unsorted input is sorted first",
			[]models.Event{
				{ID: 2, EventDate: d(5), EventType: models.EventHarvested},
				{ID: 1, EventDate: d(1), EventType: models.EventSeeded},
			},
			models.EventHarvested, true,
		},
		{
			"same-date tie resolved by id",
			[]models.Event{
				{ID: 9, EventDate: d(3), EventType: models.EventDied},
				{ID: 5, EventDate: d(3), EventType: models.EventMature},
			},
			models.EventDied, true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := DeriveStatus(tt.events)
			if found != tt.found {
				t.Fatalf("found = %v, want %v", found, tt.found)
			}
			if got != tt.want {
				t.Errorf("status = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDeriveStatusDoesNotMutateInput(t *testing.T) {
	d1 := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)

	events := []models.Event{
		{ID: 2, EventDate: d2, EventType: models.EventGerminated},
		{ID: 1, EventDate: d1, EventType: models.EventSeeded},
	}

	DeriveStatus(events)

	if events[0].ID != 2 {
		t.Error("input slice was reordered")
	}
}
