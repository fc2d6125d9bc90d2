package services

import (
	"errors"
	"fmt"

	"github.com/plantlady/plantlady-api/internal/models"
	"gorm.io/gorm"
)

var ErrCostNotFound = errors.New("cost entry not found")

type CostService struct {
	db *gorm.DB
}

func NewCostService(db *gorm.DB) *CostService {
	return &CostService{db: db}
}

func (s *CostService) Create(userID uint, cost *models.SeasonCost) (*models.SeasonCost, error) {
	var season models.Season
	if err := s.db.First(&season, cost.SeasonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSeasonNotFound
		}
		return nil, fmt.Errorf("failed to load season: %w", err)
	}

	cost.ID = 0
	cost.UserID = userID
	if err := s.db.Create(cost).Error; err != nil {
		return nil, fmt.Errorf("failed to create cost: %w", err)
	}
	return cost, nil
}

func (s *CostService) List(seasonID, userID uint, category string, limit, offset int) ([]models.SeasonCost, error) {
	query := s.db.Model(&models.SeasonCost{})
	if seasonID != 0 {
		query = query.Where("season_id = ?", seasonID)
	}
	if userID != 0 {
		query = query.Where("user_id = ?", userID)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var costs []models.SeasonCost
	err := query.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&costs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list costs: %w", err)
	}
	return costs, nil
}

func (s *CostService) Get(costID uint) (*models.SeasonCost, error) {
	var cost models.SeasonCost
	if err := s.db.First(&cost, costID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCostNotFound
		}
		return nil, fmt.Errorf("failed to load cost: %w", err)
	}
	return &cost, nil
}

func (s *CostService) Update(costID uint, update *models.SeasonCost) (*models.SeasonCost, error) {
	cost, err := s.Get(costID)
	if err != nil {
		return nil, err
	}

	cost.ItemName = update.ItemName
	cost.Cost = update.Cost
	cost.Quantity = update.Quantity
	cost.Category = update.Category
	cost.IsOneTime = update.IsOneTime
	cost.Notes = update.Notes

	if err := s.db.Save(cost).Error; err != nil {
		return nil, fmt.Errorf("failed to update cost: %w", err)
	}
	return cost, nil
}

func (s *CostService) Delete(costID uint) error {
	cost, err := s.Get(costID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(cost).Error; err != nil {
		return fmt.Errorf("failed to delete cost: %w", err)
	}
	return nil
}
