package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/plantlady/plantlady-api/internal/models"
	"gorm.io/gorm"
)

var (
	ErrSeasonNotFound = errors.New("season not found for import")
	ErrUserNotFound   = errors.New("user not found for import")
)

// Report accumulates what an import run did. Row-level problems are
// data here, not errors: a bad row never aborts the run.
type Report struct {
	VarietiesCreated int
	BatchesCreated   int
	CostsImported    int
	Skipped          []RowSkip
}

type RowSkip struct {
	Line   int
	Reason string
}

func (r *Report) skip(line int, reason string) {
	r.Skipped = append(r.Skipped, RowSkip{Line: line, Reason: reason})
}

// Importer loads historical spreadsheet exports into the record store.
// Each run is one transaction: row failures are skipped and reported,
// while a store failure rolls the whole run back.
type Importer struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Importer {
	return &Importer{db: db}
}

// ImportSeedStarting ingests a seed-starting sheet, upserting
// varieties by exact common name and batches by (variety, season).
// Re-running the same file creates nothing new.
func (im *Importer) ImportSeedStarting(r io.Reader, year int, userName string) (*Report, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}

	parser := Parser{Year: year}
	report := &Report{}

	err = im.db.Transaction(func(tx *gorm.DB) error {
		season, user, err := lookupSeasonUser(tx, year, userName)
		if err != nil {
			return err
		}

		for i, row := range rows {
			line := i + 2 // 1-based, after the header
			name := strings.TrimSpace(row["Plant Name"])
			if name == "" {
				report.skip(line, "missing plant name")
				continue
			}

			variety, created, err := upsertVariety(tx, name, row)
			if err != nil {
				return err
			}
			if created {
				report.VarietiesCreated++
			}

			created, err = upsertBatch(tx, parser, user.ID, variety.ID, season.ID, row)
			if err != nil {
				return err
			}
			if created {
				report.BatchesCreated++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// ImportSeasonCosts ingests a season cost sheet. Cost rows have no
// natural dedup key, so re-importing the same file duplicates them;
// rows with missing, unparseable or zero cost are skipped.
func (im *Importer) ImportSeasonCosts(r io.Reader, year int, userName string) (*Report, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}

	report := &Report{}

	err = im.db.Transaction(func(tx *gorm.DB) error {
		season, user, err := lookupSeasonUser(tx, year, userName)
		if err != nil {
			return err
		}

		for i, row := range rows {
			line := i + 2
			item := strings.TrimSpace(row["Material"])
			if item == "" {
				report.skip(line, "missing item name")
				continue
			}

			cost, ok := Currency(row["Cost"])
			if !ok {
				report.skip(line, "unparseable cost")
				continue
			}
			if cost.IsZero() {
				report.skip(line, "zero cost")
				continue
			}

			quantity := 1
			if q, ok := IntRange(row["Quantity"]); ok {
				quantity = q
			}

			entry := models.SeasonCost{
				UserID:    user.ID,
				SeasonID:  season.ID,
				ItemName:  item,
				Cost:      cost,
				Quantity:  &quantity,
				Category:  "material",
				IsOneTime: true,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return fmt.Errorf("failed to create cost row: %w", err)
			}
			report.CostsImported++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

func lookupSeasonUser(tx *gorm.DB, year int, userName string) (*models.Season, *models.User, error) {
	var season models.Season
	if err := tx.Where("year = ?", year).First(&season).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrSeasonNotFound
		}
		return nil, nil, fmt.Errorf("failed to load season: %w", err)
	}

	var user models.User
	if err := tx.Where("name = ?", userName).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &season, &user, nil
}

// upsertVariety matches by exact common name (case-sensitive; the
// source sheets are inconsistent, but casing intent is ambiguous so
// it is preserved).
func upsertVariety(tx *gorm.DB, name string, row map[string]string) (*models.PlantVariety, bool, error) {
	var variety models.PlantVariety
	err := tx.Where("common_name = ?", name).First(&variety).Error
	if err == nil {
		return &variety, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to look up variety: %w", err)
	}

	variety = models.PlantVariety{
		CommonName:      name,
		Category:        "vegetable",
		FloweringSeason: strings.TrimSpace(row["Flowering Season"]),
		Notes:           strings.TrimSpace(row["Notes"]),
	}
	if days, ok := IntRange(row["Days to Germinate"]); ok {
		variety.DaysToGerminate = &days
	}

	if err := tx.Create(&variety).Error; err != nil {
		return nil, false, fmt.Errorf("failed to create variety: %w", err)
	}
	return &variety, true, nil
}

// upsertBatch matches by (variety, season); one sheet row maps to at
// most one batch per season.
func upsertBatch(tx *gorm.DB, parser Parser, userID, varietyID, seasonID uint, row map[string]string) (bool, error) {
	var existing models.PlantBatch
	err := tx.Where("variety_id = ? AND season_id = ?", varietyID, seasonID).
		First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("failed to look up batch: %w", err)
	}

	batch := models.PlantBatch{
		UserID:         userID,
		VarietyID:      varietyID,
		SeasonID:       seasonID,
		RepeatNextYear: strings.ToLower(strings.TrimSpace(row["Repeat?"])),
		OutcomeNotes:   strings.TrimSpace(row["Outcome"]),
	}
	if seeds, ok := IntRange(row["Seeds"]); ok {
		batch.SeedsCount = &seeds
	}
	if packets, ok := IntRange(row["Packets"]); ok {
		batch.Packets = &packets
	}
	if d, ok := parser.Date(row["Date Planted"]); ok {
		batch.StartDate = &d
	}
	if d, ok := parser.Date(row["Transplant Outside"]); ok {
		batch.TransplantDate = &d
	}

	if err := tx.Create(&batch).Error; err != nil {
		return false, fmt.Errorf("failed to create batch: %w", err)
	}
	return true, nil
}

// readRows reads a header-keyed CSV. Short rows are tolerated and a
// UTF-8 BOM on the first header cell is stripped.
func readRows(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		row := make(map[string]string, len(header))
		for i, key := range header {
			if i < len(record) {
				row[key] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
