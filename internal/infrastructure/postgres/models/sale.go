package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/vendaforte/cartela-reward-service/internal/domain"
)

type SaleSubmissionModel struct {
	ID                   string            `gorm:"primaryKey;type:uuid"`
	VendorID             string            `gorm:"type:uuid;not null;index:idx_sale_vendor_campaign"`
	CampaignID           string            `gorm:"type:uuid;not null;index:idx_sale_vendor_campaign"`
	RequirementID        *string           `gorm:"type:uuid;index:idx_sale_requirement"`
	OrderNumber          string            `gorm:"not null"`
	Status               domain.SaleStatus `gorm:"not null;index:idx_sale_status"`
	SubmittedAt          time.Time         `gorm:"not null"`
	ValidatedAt          *time.Time
	BaseRewardValue      decimal.Decimal   `gorm:"type:decimal(18,2);not null;default:0"`
	AppliedMultiplier    decimal.Decimal   `gorm:"type:decimal(8,4);not null;default:1"`
	FinalValueWithEvent  *decimal.Decimal  `gorm:"type:decimal(18,2)"`
	CardTierAttained     *int              `gorm:"index:idx_sale_tier"`
	RewardAddedToBalance bool              `gorm:"not null;default:false;index:idx_sale_credited"`
	RewardSettled        bool              `gorm:"not null;default:false;index:idx_sale_settled"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (SaleSubmissionModel) TableName() string {
	return "sale_submissions"
}
