package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/plantlady/plantlady-api/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AnalyticsService derives streaks, distribution summaries and season
// cost rollups from current records. Nothing is cached; every call
// recomputes from the store.
type AnalyticsService struct {
	db *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

type UserStats struct {
	BatchCount int64 `json:"batch_count"`
	EventCount int64 `json:"event_count"`
	Streak     int   `json:"streak"`
}

type DistributionSummary struct {
	BatchID       uint     `json:"batch_id"`
	Total         int      `json:"total_distributed"`
	TotalQuantity int      `json:"total_quantity"`
	Gifts         int      `json:"gifts"`
	Trades        int      `json:"trades"`
	Recipients    []string `json:"recipients"`
}

type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

type SeasonCostTotal struct {
	SeasonID   uint            `json:"season_id"`
	Year       int             `json:"year"`
	TotalCost  decimal.Decimal `json:"total_cost"`
	ByCategory []CategoryTotal `json:"by_category"`
}

// UserStats returns batch count, event count and the current activity
// streak for a user.
func (s *AnalyticsService) UserStats(userID uint) (*UserStats, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	var stats UserStats
	if err := s.db.Model(&models.PlantBatch{}).Where("user_id = ?", userID).
		Count(&stats.BatchCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count batches: %w", err)
	}
	if err := s.db.Model(&models.Event{}).Where("user_id = ?", userID).
		Count(&stats.EventCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count events: %w", err)
	}

	streak, err := s.ComputeStreak(userID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	stats.Streak = streak

	return &stats, nil
}

// ComputeStreak counts consecutive calendar days, walking backward
// from asOf, on which the user logged at least one event. A gap of
// even one day, including asOf itself, breaks the streak at that
// point: this is "current streak ending now", not "longest streak
// ever". Days are UTC calendar dates.
func (s *AnalyticsService) ComputeStreak(userID uint, asOf time.Time) (int, error) {
	var events []models.Event
	err := s.db.Select("event_date").Where("user_id = ?", userID).
		Find(&events).Error
	if err != nil {
		return 0, fmt.Errorf("failed to load events: %w", err)
	}

	dates := make([]time.Time, len(events))
	for i, e := range events {
		dates[i] = e.EventDate
	}
	return streakEndingAt(dates, asOf), nil
}

// streakEndingAt walks backward one day at a time from asOf, counting
// while each day has at least one event, and stops at the first miss.
func streakEndingAt(eventDates []time.Time, asOf time.Time) int {
	seen := make(map[string]struct{}, len(eventDates))
	for _, d := range eventDates {
		seen[d.UTC().Format("2006-01-02")] = struct{}{}
	}

	streak := 0
	day := asOf.UTC()
	for {
		if _, ok := seen[day.Format("2006-01-02")]; !ok {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// DistributionSummary aggregates all gifts and trades for a batch.
func (s *AnalyticsService) DistributionSummary(batchID uint) (*DistributionSummary, error) {
	var batch models.PlantBatch
	if err := s.db.First(&batch, batchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBatchNotFound
		}
		return nil, fmt.Errorf("failed to load batch: %w", err)
	}

	var dists []models.Distribution
	if err := s.db.Where("batch_id = ?", batchID).Find(&dists).Error; err != nil {
		return nil, fmt.Errorf("failed to load distributions: %w", err)
	}

	summary := summarizeDistributions(dists)
	summary.BatchID = batchID
	return &summary, nil
}

func summarizeDistributions(dists []models.Distribution) DistributionSummary {
	summary := DistributionSummary{Recipients: []string{}}
	recipients := make(map[string]struct{})

	for _, d := range dists {
		summary.Total++
		if d.Quantity != nil {
			summary.TotalQuantity += *d.Quantity
		}
		switch d.Type {
		case models.DistributionGift:
			summary.Gifts++
		case models.DistributionTrade:
			summary.Trades++
		}
		if _, ok := recipients[d.Recipient]; !ok {
			recipients[d.Recipient] = struct{}{}
			summary.Recipients = append(summary.Recipients, d.Recipient)
		}
	}
	return summary
}

// SeasonTotal sums all cost rows for a season with a per-category
// breakdown. Sums are exact decimal arithmetic; costs are currency.
func (s *AnalyticsService) SeasonTotal(seasonID uint) (*SeasonCostTotal, error) {
	var season models.Season
	if err := s.db.First(&season, seasonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSeasonNotFound
		}
		return nil, fmt.Errorf("failed to load season: %w", err)
	}

	var costs []models.SeasonCost
	if err := s.db.Where("season_id = ?", seasonID).Find(&costs).Error; err != nil {
		return nil, fmt.Errorf("failed to load costs: %w", err)
	}

	total := totalCosts(costs)
	total.SeasonID = seasonID
	total.Year = season.Year
	return &total, nil
}

func totalCosts(costs []models.SeasonCost) SeasonCostTotal {
	total := SeasonCostTotal{
		TotalCost:  decimal.Zero,
		ByCategory: []CategoryTotal{},
	}

	index := make(map[string]int)
	for _, c := range costs {
		total.TotalCost = total.TotalCost.Add(c.Cost)
		i, ok := index[c.Category]
		if !ok {
			i = len(total.ByCategory)
			index[c.Category] = i
			total.ByCategory = append(total.ByCategory, CategoryTotal{Category: c.Category, Total: decimal.Zero})
		}
		total.ByCategory[i].Total = total.ByCategory[i].Total.Add(c.Cost)
	}
	return total
}
