package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SeasonCost is one expense line for a season. Cost is fixed-point
// currency; sums over it must be exact.
type SeasonCost struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	UserID   uint `gorm:"not null;index" json:"user_id"`
	SeasonID uint `gorm:"not null;index" json:"season_id"`

	ItemName string          `gorm:"size:100;not null" json:"item_name"`
	Cost     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"cost"`
	Quantity *int            `json:"quantity"`
	Category string          `gorm:"size:50;not null" json:"category"` // seed, material, tool, etc.
	// Metadata for future recurring-cost handling; totals currently sum
	// both kinds identically.
	IsOneTime bool      `gorm:"default:true" json:"is_one_time"`
	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}
