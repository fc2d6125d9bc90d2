package importer

import (
	"errors"
	"strings"
	"testing"

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
		&models.SeasonCost{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedSeasonUser(t *testing.T, db *gorm.DB, year int, name string) {
	t.Helper()
	if err := db.Create(&models.User{Name: name, PINHash: "x"}).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	if err := db.Create(&models.Season{Year: year}).Error; err != nil {
		t.Fatalf("seed season: %v", err)
	}
}

func count(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestReadRows(t *testing.T) {
	input := "Plant Name,Seeds,Date Planted\nTomato,12,3/15/2026\nBasil,,\n"

	rows, err := readRows(strings.NewReader(input))
	if err != nil {
		t.Fatalf("readRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0]["Plant Name"] != "Tomato" || rows[0]["Seeds"] != "12" {
		t.Errorf("unexpected first row: %v", rows[0])
	}
	if rows[1]["Plant Name"] != "Basil" || rows[1]["Seeds"] != "" {
		t.Errorf("unexpected second row: %v", rows[1])
	}
}

func TestReadRowsStripsBOM(t *testing.T) {
	input := "\uFEFFPlant Name,Seeds\nPepper,6\n"

	rows, err := readRows(strings.NewReader(input))
	if err != nil {
		t.Fatalf("readRows: %v", err)
	}
	if rows[0]["Plant Name"] != "Pepper" {
		t.Errorf("BOM not stripped from header, row: %v", rows[0])
	}
}

func TestReadRowsToleratesShortRows(t *testing.T) {
	input := "Plant Name,Seeds,Notes\nZinnia\n"

	rows, err := readRows(strings.NewReader(input))
	if err != nil {
		t.Fatalf("readRows: %v", err)
	}
	if rows[0]["Plant Name"] != "Zinnia" {
		t.Errorf("unexpected row: %v", rows[0])
	}
	if _, present := rows[0]["Notes"]; present {
		t.Errorf("short row should not fill missing columns: %v", rows[0])
	}
}

const seedSheet = "Plant Name,Seeds,Packets,Days to Germinate,Date Planted,Transplant Outside,Repeat?,Outcome\n" +
	"Tomato,12,1,7-14,3/15/2026,5/20/2026,Yes,great yield\n" +
	"Basil,,1,5,4/1,,maybe,\n"

func TestImportSeedStartingIdempotent(t *testing.T) {
	db := testDB(t)
	seedSeasonUser(t, db, 2026, "Jamison")
	im := New(db)

	first, err := im.ImportSeedStarting(strings.NewReader(seedSheet), 2026, "Jamison")
	if err != nil {
		t.Fatalf("first import: %v", err)
	}
	if first.VarietiesCreated != 2 || first.BatchesCreated != 2 {
		t.Fatalf("first run created %d varieties, %d batches, want 2 and 2",
			first.VarietiesCreated, first.BatchesCreated)
	}

	// Re-running the unchanged sheet creates nothing new.
	second, err := im.ImportSeedStarting(strings.NewReader(seedSheet), 2026, "Jamison")
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if second.VarietiesCreated != 0 || second.BatchesCreated != 0 {
		t.Errorf("second run created %d varieties, %d batches, want 0 and 0",
			second.VarietiesCreated, second.BatchesCreated)
	}
	if n := count(t, db, &models.PlantVariety{}); n != 2 {
		t.Errorf("variety rows = %d, want 2", n)
	}
	if n := count(t, db, &models.PlantBatch{}); n != 2 {
		t.Errorf("batch rows = %d, want 2", n)
	}
}

func TestImportSeedStartingSkipsNamelessRows(t *testing.T) {
	db := testDB(t)
	seedSeasonUser(t, db, 2026, "Jamison")

	sheet := "Plant Name,Seeds\nTomato,12\n,6\n"
	report, err := New(db).ImportSeedStarting(strings.NewReader(sheet), 2026, "Jamison")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if report.VarietiesCreated != 1 {
		t.Errorf("VarietiesCreated = %d, want 1", report.VarietiesCreated)
	}
	if len(report.Skipped) != 1 || report.Skipped[0].Line != 3 {
		t.Errorf("Skipped = %v, want line 3", report.Skipped)
	}
}

func TestImportSeedStartingUnknownSeason(t *testing.T) {
	db := testDB(t)
	seedSeasonUser(t, db, 2026, "Jamison")

	_, err := New(db).ImportSeedStarting(strings.NewReader(seedSheet), 1999, "Jamison")
	if !errors.Is(err, ErrSeasonNotFound) {
		t.Errorf("err = %v, want ErrSeasonNotFound", err)
	}
}

func TestImportSeasonCostsDuplicatesOnRerun(t *testing.T) {
	db := testDB(t)
	seedSeasonUser(t, db, 2026, "Amy")
	im := New(db)

	sheet := "Material,Cost,Quantity\nPotting soil,$12.99,2\nSeed trays,$4.50,\nFree mulch,$0.00,1\n"

	first, err := im.ImportSeasonCosts(strings.NewReader(sheet), 2026, "Amy")
	if err != nil {
		t.Fatalf("first import: %v", err)
	}
	if first.CostsImported != 2 {
		t.Fatalf("CostsImported = %d, want 2 (zero-cost row skipped)", first.CostsImported)
	}
	if len(first.Skipped) != 1 {
		t.Errorf("Skipped = %v, want the zero-cost row", first.Skipped)
	}

	// Cost rows have no natural key; a re-run duplicates them.
	second, err := im.ImportSeasonCosts(strings.NewReader(sheet), 2026, "Amy")
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if second.CostsImported != 2 {
		t.Errorf("second run CostsImported = %d, want 2", second.CostsImported)
	}
	if n := count(t, db, &models.SeasonCost{}); n != 4 {
		t.Errorf("cost rows = %d, want 4", n)
	}
}
