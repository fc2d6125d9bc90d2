package models

import "time"

// DistributionType constrains outgoing transfers to gifts and trades.
type DistributionType string

const (
	DistributionGift  DistributionType = "gift"
	DistributionTrade DistributionType = "trade"
)

func (t DistributionType) Valid() bool {
	return t == DistributionGift || t == DistributionTrade
}

// Distribution is a gift or trade of plants from a batch to a named
// recipient.
type Distribution struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	BatchID uint `gorm:"not null;index" json:"batch_id"`
	UserID  uint `gorm:"not null;index" json:"user_id"`

	Recipient string           `gorm:"size:100;not null" json:"recipient"`
	Quantity  *int             `json:"quantity"`
	Type      DistributionType `gorm:"size:20;not null" json:"type"`
	Date      time.Time        `gorm:"not null;index" json:"date"`
	Notes     string           `gorm:"type:text" json:"notes"`
	CreatedAt time.Time        `json:"created_at"`
}
