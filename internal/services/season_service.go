package services

import (
	"errors"
	"fmt"

	"github.com/plantlady/plantlady-api/internal/models"
	"gorm.io/gorm"
)

var (
	ErrSeasonNotFound      = errors.New("season not found")
	ErrSeasonExists        = errors.New("season already exists")
	ErrSeasonHasDependents = errors.New("cannot delete season with existing batches or costs")
)

type SeasonService struct {
	db *gorm.DB
}

func NewSeasonService(db *gorm.DB) *SeasonService {
	return &SeasonService{db: db}
}

func (s *SeasonService) Create(year int, notes string) (*models.Season, error) {
	var existing models.Season
	err := s.db.Where("year = ?", year).First(&existing).Error
	if err == nil {
		return nil, ErrSeasonExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check season: %w", err)
	}

	season := models.Season{Year: year, Notes: notes}
	if err := s.db.Create(&season).Error; err != nil {
		return nil, fmt.Errorf("failed to create season: %w", err)
	}
	return &season, nil
}

func (s *SeasonService) List() ([]models.Season, error) {
	var seasons []models.Season
	if err := s.db.Order("year DESC").Find(&seasons).Error; err != nil {
		return nil, fmt.Errorf("failed to list seasons: %w", err)
	}
	return seasons, nil
}

func (s *SeasonService) Get(seasonID uint) (*models.Season, error) {
	var season models.Season
	if err := s.db.First(&season, seasonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSeasonNotFound
		}
		return nil, fmt.Errorf("failed to load season: %w", err)
	}
	return &season, nil
}

func (s *SeasonService) GetByYear(year int) (*models.Season, error) {
	var season models.Season
	if err := s.db.Where("year = ?", year).First(&season).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSeasonNotFound
		}
		return nil, fmt.Errorf("failed to load season: %w", err)
	}
	return &season, nil
}

func (s *SeasonService) Update(seasonID uint, year int, notes string) (*models.Season, error) {
	season, err := s.Get(seasonID)
	if err != nil {
		return nil, err
	}

	season.Year = year
	season.Notes = notes
	if err := s.db.Save(season).Error; err != nil {
		return nil, fmt.Errorf("failed to update season: %w", err)
	}
	return season, nil
}

// Delete removes a season only when nothing references it.
func (s *SeasonService) Delete(seasonID uint) error {
	season, err := s.Get(seasonID)
	if err != nil {
		return err
	}

	var batches, costs int64
	if err := s.db.Model(&models.PlantBatch{}).Where("season_id = ?", seasonID).
		Count(&batches).Error; err != nil {
		return fmt.Errorf("failed to count batches: %w", err)
	}
	if err := s.db.Model(&models.SeasonCost{}).Where("season_id = ?", seasonID).
		Count(&costs).Error; err != nil {
		return fmt.Errorf("failed to count costs: %w", err)
	}
	if batches > 0 || costs > 0 {
		return ErrSeasonHasDependents
	}

	if err := s.db.Delete(season).Error; err != nil {
		return fmt.Errorf("failed to delete season: %w", err)
	}
	return nil
}
