package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CampaignModel struct {
	ID                string          `gorm:"primaryKey;type:uuid"`
	Name              string          `gorm:"not null"`
	ManagerPercentage decimal.Decimal `gorm:"type:decimal(6,4);not null;default:0"`
	Active            bool            `gorm:"not null;default:true"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (CampaignModel) TableName() string {
	return "campaigns"
}

type SpecialEventModel struct {
	ID         string          `gorm:"primaryKey;type:uuid"`
	CampaignID string          `gorm:"type:uuid;not null;index:idx_event_campaign"`
	Name       string          `gorm:"not null"`
	Multiplier decimal.Decimal `gorm:"type:decimal(8,4);not null;default:1"`
	ActiveFrom time.Time       `gorm:"not null;index:idx_event_window"`
	ActiveTo   time.Time       `gorm:"not null;index:idx_event_window"`
	Enabled    bool            `gorm:"not null;default:true"`
	CreatedAt  time.Time
}

func (SpecialEventModel) TableName() string {
	return "special_events"
}
