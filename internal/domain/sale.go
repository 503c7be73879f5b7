package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleStatus string

const (
	SalePendingReview  SaleStatus = "PENDING_REVIEW"
	SaleValidated      SaleStatus = "VALIDATED"
	SaleRejected       SaleStatus = "REJECTED"
	SaleManualConflict SaleStatus = "MANUAL_CONFLICT"
)

// SaleSubmission is one vendor sale record. FinalValueWithEvent is set
// if-and-only-if RewardAddedToBalance is true; CardTierAttained is set
// only once the sale is validated.
type SaleSubmission struct {
	ID                   string
	VendorID             string
	CampaignID           string
	RequirementID        *string
	OrderNumber          string
	Status               SaleStatus
	SubmittedAt          time.Time
	ValidatedAt          *time.Time
	BaseRewardValue      decimal.Decimal
	AppliedMultiplier    decimal.Decimal
	FinalValueWithEvent  *decimal.Decimal
	CardTierAttained     *int
	RewardAddedToBalance bool
	RewardSettled        bool
}

// OrdinalCount pairs a requirement ordinal with how many validated sales
// were counted against it. Unresolved is the number of validated sales
// whose requirement reference could not be mapped to an ordinal.
type OrdinalCounts struct {
	Counts     map[int]int64
	Unresolved int64
}

type SaleRepository interface {
	WithTx(tx *gorm.DB) SaleRepository
	GetByID(saleID string) (*SaleSubmission, error)
	Create(sale *SaleSubmission) error
	// MarkValidated transitions the sale to VALIDATED and stamps the tier
	// it counted toward.
	MarkValidated(saleID string, tierNumber int, validatedAt time.Time) error
	// CountValidatedByOrdinal groups this vendor's validated sales for one
	// tier by the ordinal of their requirement.
	CountValidatedByOrdinal(vendorID, campaignID string, tierNumber int) (*OrdinalCounts, error)
	// FindUncredited returns validated sales of the tier that have not yet
	// been added to the vendor balance.
	FindUncredited(vendorID, campaignID string, tierNumber int) ([]*SaleSubmission, error)
	// ApplyReward persists the multiplier outcome and flips
	// reward_added_to_balance in one update.
	ApplyReward(saleID string, multiplier, finalValue decimal.Decimal) error
	// FindUnsettledByVendorIDs bulk-fetches credited, not-yet-liquidated
	// sales for a whole set of vendors in a single query.
	FindUnsettledByVendorIDs(vendorIDs []string) ([]*SaleSubmission, error)
	// MarkSettled flips reward_settled for the given sale ids.
	MarkSettled(saleIDs []string) error
}
