package services

import (
	"testing"
	"time"

	"github.com/plantlady/plantlady-api/internal/models"
)

func TestCareStatusNeverLogged(t *testing.T) {
	schedule := models.CareSchedule{CareType: models.CareWatering, FrequencyDays: 7}
	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)

	got := careStatus(schedule, nil, now)

	if !got.Overdue {
		t.Error("never-cared-for schedule must be overdue")
	}
	// "never logged" is distinct from "0 days ago"
	if got.DaysSince != nil {
		t.Errorf("DaysSince = %v, want nil", *got.DaysSince)
	}
	if got.LastEvent != nil {
		t.Errorf("LastEvent = %v, want nil", got.LastEvent)
	}
}

func TestCareStatusDueBoundary(t *testing.T) {
	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	schedule := models.CareSchedule{CareType: models.CareWatering, FrequencyDays: 7}

	tests := []struct {
		name     string
		lastDate time.Time
		wantDays int
		overdue  bool
	}{
		{"just watered", now.Add(-2 * time.Hour), 0, false},
		{"one day short", now.AddDate(0, 0, -6), 6, false},
		{"exactly at frequency is due", now.AddDate(0, 0, -7), 7, true},
		{"well past due", now.AddDate(0, 0, -12), 12, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			last := &models.CareEvent{CareType: models.CareWatering, EventDate: tt.lastDate}
			got := careStatus(schedule, last, now)

			if got.DaysSince == nil {
				t.Fatal("DaysSince is nil")
			}
			if *got.DaysSince != tt.wantDays {
				t.Errorf("DaysSince = %d, want %d", *got.DaysSince, tt.wantDays)
			}
			if got.Overdue != tt.overdue {
				t.Errorf("Overdue = %v, want %v", got.Overdue, tt.overdue)
			}
		})
	}
}

func TestLatestCareEvent(t *testing.T) {
	d := func(day int) time.Time {
		return time.Date(2026, 6, day, 0, 0, 0, 0, time.UTC)
	}

	events := []models.CareEvent{
		{ID: 1, CareType: models.CareWatering, EventDate: d(1)},
		{ID: 2, CareType: models.CareFertilizing, EventDate: d(8)},
		{ID: 3, CareType: models.CareWatering, EventDate: d(5)},
	}

	last := latestCareEvent(events, models.CareWatering)
	if last == nil || last.ID != 3 {
		t.Fatalf("latest watering = %v, want event 3", last)
	}

	// Other care types never bleed into the lookup.
	if latestCareEvent(events, models.CareRepotting) != nil {
		t.Error("expected nil for a care type with no events")
	}
}
