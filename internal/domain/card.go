package domain

import (
	"time"

	"gorm.io/gorm"
)

// CardTierRule is one numbered "cartela" of a campaign. Tiers are
// sequential and replicate upward as vendors complete them.
type CardTierRule struct {
	ID           string
	CampaignID   string
	TierNumber   int
	Description  string
	Requirements []Requirement
	CreatedAt    time.Time
}

// Requirement is one line of a cartela. Ordinal identifies which
// requirement a sale counts against and must be unique within the tier;
// it is preserved verbatim when the tier is replicated.
type Requirement struct {
	ID               string
	CardTierRuleID   string
	Description      string
	RequiredQuantity int
	UnitType         string
	Ordinal          int
	Conditions       []Condition
}

// Condition is an optional validation predicate attached to a requirement.
type Condition struct {
	ID            string
	RequirementID string
	Field         string
	Operator      string
	Value         string
}

// CompletedCardTier is the idempotency ledger: one row per
// (vendor, campaign, tier) means the tier's reward was applied.
type CompletedCardTier struct {
	ID          string
	VendorID    string
	CampaignID  string
	TierNumber  int
	CompletedAt time.Time
}

type CardTierRepository interface {
	WithTx(tx *gorm.DB) CardTierRepository
	// GetByCampaignAndTier loads a tier with its requirements and their
	// conditions. Returns ErrTierNotFound when absent.
	GetByCampaignAndTier(campaignID string, tierNumber int) (*CardTierRule, error)
	// TierExists is a cheap existence probe used by the replicator.
	TierExists(campaignID string, tierNumber int) (bool, error)
	// TierNumberForRequirement resolves which tier a requirement belongs
	// to. Returns ErrTierNotFound for a dangling reference.
	TierNumberForRequirement(requirementID string) (int, error)
	// Create persists a tier with its requirements, rejecting duplicate
	// ordinals with ErrDuplicateOrdinal.
	Create(tier *CardTierRule) error
}

type CompletedTierRepository interface {
	WithTx(tx *gorm.DB) CompletedTierRepository
	// Insert writes the completion row. A unique-constraint violation on
	// (vendor, campaign, tier) is returned as ErrTierAlreadyCompleted so
	// callers can take the idempotent branch.
	Insert(completed *CompletedCardTier) error
	Find(vendorID, campaignID string, tierNumber int) (*CompletedCardTier, error)
}
