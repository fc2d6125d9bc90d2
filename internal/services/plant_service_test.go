package services

import (
	"errors"
	"testing"
	"time"

	"github.com/plantlady/plantlady-api/internal/models"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB opens an isolated in-memory store. Connections are capped at
// one so every query sees the same memory database.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Season{},
		&models.PlantVariety{},
		&models.PlantBatch{},
		&models.Event{},
		&models.Photo{},
		&models.Distribution{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func mustCreate(t *testing.T, db *gorm.DB, value any) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("create %T: %v", value, err)
	}
}

func countWhere(t *testing.T, db *gorm.DB, model any, query string, args ...any) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Where(query, args...).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestDeleteBatchCascade(t *testing.T) {
	db := testDB(t)
	d := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	user := models.User{Name: "Jamison", PINHash: "x"}
	mustCreate(t, db, &user)
	season := models.Season{Year: 2026}
	mustCreate(t, db, &season)
	variety := models.PlantVariety{CommonName: "Tomato", Category: "vegetable"}
	mustCreate(t, db, &variety)

	batch := models.PlantBatch{UserID: user.ID, VarietyID: variety.ID, SeasonID: season.ID}
	mustCreate(t, db, &batch)
	other := models.PlantBatch{UserID: user.ID, VarietyID: variety.ID, SeasonID: season.ID}
	mustCreate(t, db, &other)

	mustCreate(t, db, &models.Event{BatchID: batch.ID, UserID: user.ID, EventType: models.EventSeeded, EventDate: d})
	mustCreate(t, db, &models.Event{BatchID: batch.ID, UserID: user.ID, EventType: models.EventGerminated, EventDate: d.AddDate(0, 0, 7)})
	mustCreate(t, db, &models.Event{BatchID: other.ID, UserID: user.ID, EventType: models.EventSeeded, EventDate: d})

	mustCreate(t, db, &models.Photo{BatchID: batch.ID, UserID: user.ID, Filename: "a.jpg"})
	mustCreate(t, db, &models.Photo{BatchID: batch.ID, UserID: user.ID, Filename: "b.jpg"})
	mustCreate(t, db, &models.Photo{BatchID: other.ID, UserID: user.ID, Filename: "keep.jpg"})

	mustCreate(t, db, &models.Distribution{BatchID: batch.ID, UserID: user.ID, Recipient: "Maria", Type: models.DistributionGift, Date: d})

	svc := NewPlantService(db)
	filenames, err := svc.DeleteBatch(batch.ID)
	if err != nil {
		t.Fatalf("DeleteBatch: %v", err)
	}

	// Blob cleanup gets exactly the deleted batch's photo files.
	if len(filenames) != 2 {
		t.Errorf("filenames = %v, want the two deleted photos", filenames)
	}
	for _, name := range filenames {
		if name == "keep.jpg" {
			t.Error("other batch's photo must not be slated for cleanup")
		}
	}

	// Nothing belonging to the deleted batch survives.
	if n := countWhere(t, db, &models.Event{}, "batch_id = ?", batch.ID); n != 0 {
		t.Errorf("orphaned events = %d", n)
	}
	if n := countWhere(t, db, &models.Photo{}, "batch_id = ?", batch.ID); n != 0 {
		t.Errorf("orphaned photos = %d", n)
	}
	if n := countWhere(t, db, &models.Distribution{}, "batch_id = ?", batch.ID); n != 0 {
		t.Errorf("orphaned distributions = %d", n)
	}
	if _, err := svc.GetBatch(batch.ID); !errors.Is(err, ErrBatchNotFound) {
		t.Errorf("deleted batch still loads, err = %v", err)
	}

	// The sibling batch is untouched.
	if n := countWhere(t, db, &models.Event{}, "batch_id = ?", other.ID); n != 1 {
		t.Errorf("other batch events = %d, want 1", n)
	}
	if n := countWhere(t, db, &models.Photo{}, "batch_id = ?", other.ID); n != 1 {
		t.Errorf("other batch photos = %d, want 1", n)
	}
}

func TestDeleteBatchNotFound(t *testing.T) {
	db := testDB(t)

	_, err := NewPlantService(db).DeleteBatch(999)
	if !errors.Is(err, ErrBatchNotFound) {
		t.Errorf("err = %v, want ErrBatchNotFound", err)
	}
}
