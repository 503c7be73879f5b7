package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Campaign struct {
	ID                string
	Name              string
	ManagerPercentage decimal.Decimal
	Active            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// SpecialEvent is a promotional multiplier window. A sale earns the
// multiplier when its submission timestamp falls inside [ActiveFrom,
// ActiveTo], regardless of when staff validated it.
type SpecialEvent struct {
	ID         string
	CampaignID string
	Name       string
	Multiplier decimal.Decimal
	ActiveFrom time.Time
	ActiveTo   time.Time
	Enabled    bool
}

type CampaignRepository interface {
	WithTx(tx *gorm.DB) CampaignRepository
	GetByID(campaignID string) (*Campaign, error)
	Create(campaign *Campaign) error
}

type SpecialEventRepository interface {
	WithTx(tx *gorm.DB) SpecialEventRepository
	Create(event *SpecialEvent) error
	// FindActiveAt returns the enabled event whose window contains ts,
	// or nil when no window applies.
	FindActiveAt(campaignID string, ts time.Time) (*SpecialEvent, error)
}
