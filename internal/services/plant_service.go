package services

import (
	"errors"
	"fmt"

	"github.com/plantlady/plantlady-api/internal/models"
	"gorm.io/gorm"
)

var (
	ErrVarietyNotFound   = errors.New("plant variety not found")
	ErrVarietyExists     = errors.New("plant variety already exists")
	ErrVarietyHasBatches = errors.New("cannot delete variety with existing plant batches")
)

// PlantService manages the variety catalog and plant batches.
type PlantService struct {
	db *gorm.DB
}

func NewPlantService(db *gorm.DB) *PlantService {
	return &PlantService{db: db}
}

// --- Varieties ---

func (s *PlantService) CreateVariety(variety *models.PlantVariety) (*models.PlantVariety, error) {
	var existing models.PlantVariety
	err := s.db.Where("common_name = ?", variety.CommonName).First(&existing).Error
	if err == nil {
		return nil, ErrVarietyExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check variety: %w", err)
	}

	variety.ID = 0
	if err := s.db.Create(variety).Error; err != nil {
		return nil, fmt.Errorf("failed to create variety: %w", err)
	}
	return variety, nil
}

func (s *PlantService) ListVarieties(category string, limit, offset int) ([]models.PlantVariety, error) {
	query := s.db.Model(&models.PlantVariety{})
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var varieties []models.PlantVariety
	if err := query.Limit(limit).Offset(offset).Find(&varieties).Error; err != nil {
		return nil, fmt.Errorf("failed to list varieties: %w", err)
	}
	return varieties, nil
}

func (s *PlantService) GetVariety(varietyID uint) (*models.PlantVariety, error) {
	var variety models.PlantVariety
	if err := s.db.First(&variety, varietyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVarietyNotFound
		}
		return nil, fmt.Errorf("failed to load variety: %w", err)
	}
	return &variety, nil
}

func (s *PlantService) UpdateVariety(varietyID uint, update *models.PlantVariety) (*models.PlantVariety, error) {
	variety, err := s.GetVariety(varietyID)
	if err != nil {
		return nil, err
	}

	variety.CommonName = update.CommonName
	variety.ScientificName = update.ScientificName
	variety.Category = update.Category
	variety.FloweringSeason = update.FloweringSeason
	variety.DaysToGerminate = update.DaysToGerminate
	variety.DaysToMature = update.DaysToMature
	variety.Notes = update.Notes

	if err := s.db.Save(variety).Error; err != nil {
		return nil, fmt.Errorf("failed to update variety: %w", err)
	}
	return variety, nil
}

// DeleteVariety removes a catalog entry. Varieties with dependent
// batches are protected.
func (s *PlantService) DeleteVariety(varietyID uint) error {
	variety, err := s.GetVariety(varietyID)
	if err != nil {
		return err
	}

	var batches int64
	if err := s.db.Model(&models.PlantBatch{}).Where("variety_id = ?", varietyID).
		Count(&batches).Error; err != nil {
		return fmt.Errorf("failed to count batches: %w", err)
	}
	if batches > 0 {
		return ErrVarietyHasBatches
	}

	if err := s.db.Delete(variety).Error; err != nil {
		return fmt.Errorf("failed to delete variety: %w", err)
	}
	return nil
}

// --- Batches ---

// CreateBatch validates every foreign key before insert; children are
// never written against absent parents.
func (s *PlantService) CreateBatch(userID uint, batch *models.PlantBatch) (*models.PlantBatch, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if _, err := s.GetVariety(batch.VarietyID); err != nil {
		return nil, err
	}
	var season models.Season
	if err := s.db.First(&season, batch.SeasonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSeasonNotFound
		}
		return nil, fmt.Errorf("failed to load season: %w", err)
	}

	batch.ID = 0
	batch.UserID = userID
	if err := s.db.Create(batch).Error; err != nil {
		return nil, fmt.Errorf("failed to create batch: %w", err)
	}
	return batch, nil
}

func (s *PlantService) ListBatches(seasonID, varietyID, userID uint, limit, offset int) ([]models.PlantBatch, error) {
	query := s.db.Model(&models.PlantBatch{})
	if seasonID != 0 {
		query = query.Where("season_id = ?", seasonID)
	}
	if varietyID != 0 {
		query = query.Where("variety_id = ?", varietyID)
	}
	if userID != 0 {
		query = query.Where("user_id = ?", userID)
	}

	var batches []models.PlantBatch
	if err := query.Limit(limit).Offset(offset).Find(&batches).Error; err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}
	return batches, nil
}

func (s *PlantService) GetBatch(batchID uint) (*models.PlantBatch, error) {
	var batch models.PlantBatch
	if err := s.db.First(&batch, batchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBatchNotFound
		}
		return nil, fmt.Errorf("failed to load batch: %w", err)
	}
	return &batch, nil
}

func (s *PlantService) UpdateBatch(batchID uint, update *models.PlantBatch) (*models.PlantBatch, error) {
	batch, err := s.GetBatch(batchID)
	if err != nil {
		return nil, err
	}

	batch.SeedsCount = update.SeedsCount
	batch.Packets = update.Packets
	batch.Source = update.Source
	batch.Location = update.Location
	batch.StartDate = update.StartDate
	batch.TransplantDate = update.TransplantDate
	batch.RepeatNextYear = update.RepeatNextYear
	batch.OutcomeNotes = update.OutcomeNotes

	if err := s.db.Save(batch).Error; err != nil {
		return nil, fmt.Errorf("failed to update batch: %w", err)
	}
	return batch, nil
}

// DeleteBatch removes a batch and all dependent rows as one
// all-or-nothing transaction: events, photos and distributions are
// deleted before the batch itself, and a failure at any step rolls
// everything back. It returns the filenames of deleted photo rows so
// the caller can clean up blob storage after commit.
func (s *PlantService) DeleteBatch(batchID uint) ([]string, error) {
	var filenames []string

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var batch models.PlantBatch
		if err := tx.First(&batch, batchID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBatchNotFound
			}
			return fmt.Errorf("failed to load batch: %w", err)
		}

		var photos []models.Photo
		if err := tx.Where("batch_id = ?", batchID).Find(&photos).Error; err != nil {
			return fmt.Errorf("failed to load photos: %w", err)
		}
		for _, p := range photos {
			filenames = append(filenames, p.Filename)
		}

		if err := tx.Where("batch_id = ?", batchID).Delete(&models.Event{}).Error; err != nil {
			return fmt.Errorf("failed to delete events: %w", err)
		}
		if err := tx.Where("batch_id = ?", batchID).Delete(&models.Photo{}).Error; err != nil {
			return fmt.Errorf("failed to delete photos: %w", err)
		}
		if err := tx.Where("batch_id = ?", batchID).Delete(&models.Distribution{}).Error; err != nil {
			return fmt.Errorf("failed to delete distributions: %w", err)
		}
		if err := tx.Delete(&batch).Error; err != nil {
			return fmt.Errorf("failed to delete batch: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return filenames, nil
}
