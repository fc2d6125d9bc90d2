package services

import (
	"errors"
	"fmt"

	"github.com/plantlady/plantlady-api/internal/models"
	"gorm.io/gorm"
)

var (
	ErrDistributionNotFound    = errors.New("distribution record not found")
	ErrInvalidDistributionType = errors.New("type must be 'gift' or 'trade'")
)

// DistributionService logs outgoing gifts and trades of plant
// material.
type DistributionService struct {
	db *gorm.DB
}

func NewDistributionService(db *gorm.DB) *DistributionService {
	return &DistributionService{db: db}
}

func (s *DistributionService) Create(userID uint, dist *models.Distribution) (*models.Distribution, error) {
	var batch models.PlantBatch
	if err := s.db.First(&batch, dist.BatchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBatchNotFound
		}
		return nil, fmt.Errorf("failed to load batch: %w", err)
	}

	if !dist.Type.Valid() {
		return nil, ErrInvalidDistributionType
	}

	dist.ID = 0
	dist.UserID = userID
	if err := s.db.Create(dist).Error; err != nil {
		return nil, fmt.Errorf("failed to create distribution: %w", err)
	}
	return dist, nil
}

func (s *DistributionService) List(batchID, userID uint, distType string, limit, offset int) ([]models.Distribution, error) {
	query := s.db.Model(&models.Distribution{})
	if batchID != 0 {
		query = query.Where("batch_id = ?", batchID)
	}
	if userID != 0 {
		query = query.Where("user_id = ?", userID)
	}
	if distType != "" {
		if !models.DistributionType(distType).Valid() {
			return nil, ErrInvalidDistributionType
		}
		query = query.Where("type = ?", distType)
	}

	var dists []models.Distribution
	err := query.Order("date DESC").
		Limit(limit).
		Offset(offset).
		Find(&dists).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list distributions: %w", err)
	}
	return dists, nil
}

func (s *DistributionService) Get(distID uint) (*models.Distribution, error) {
	var dist models.Distribution
	if err := s.db.First(&dist, distID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDistributionNotFound
		}
		return nil, fmt.Errorf("failed to load distribution: %w", err)
	}
	return &dist, nil
}

func (s *DistributionService) Update(distID uint, update *models.Distribution) (*models.Distribution, error) {
	dist, err := s.Get(distID)
	if err != nil {
		return nil, err
	}

	if !update.Type.Valid() {
		return nil, ErrInvalidDistributionType
	}

	dist.Recipient = update.Recipient
	dist.Quantity = update.Quantity
	dist.Type = update.Type
	dist.Date = update.Date
	dist.Notes = update.Notes

	if err := s.db.Save(dist).Error; err != nil {
		return nil, fmt.Errorf("failed to update distribution: %w", err)
	}
	return dist, nil
}

func (s *DistributionService) Delete(distID uint) error {
	dist, err := s.Get(distID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(dist).Error; err != nil {
		return fmt.Errorf("failed to delete distribution: %w", err)
	}
	return nil
}
