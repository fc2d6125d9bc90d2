package services

import (
	"errors"
	"testing"

	"github.com/plantlady/plantlady-api/internal/models"
)

func TestSeasonGetByYear(t *testing.T) {
	db := testDB(t)
	mustCreate(t, db, &models.Season{Year: 2026, Notes: "wet spring"})

	svc := NewSeasonService(db)

	season, err := svc.GetByYear(2026)
	if err != nil {
		t.Fatalf("GetByYear: %v", err)
	}
	if season.Year != 2026 || season.Notes != "wet spring" {
		t.Errorf("unexpected season %+v", season)
	}

	if _, err := svc.GetByYear(1999); !errors.Is(err, ErrSeasonNotFound) {
		t.Errorf("err = %v, want ErrSeasonNotFound", err)
	}
}
