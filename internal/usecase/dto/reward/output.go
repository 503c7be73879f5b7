package rewarddto

import "github.com/shopspring/decimal"

// TierReward summarizes one rewarded tier of a cascade run.
type TierReward struct {
	TierNumber    int             `json:"tier_number"`
	SalesCredited int             `json:"sales_credited"`
	VendorAmount  decimal.Decimal `json:"vendor_amount"`
	ManagerAmount decimal.Decimal `json:"manager_amount"`
	EventNames    []string        `json:"event_names,omitempty"`
}

// CascadeOutput reports how far a cascade walked and what it credited.
type CascadeOutput struct {
	VendorID      string       `json:"vendor_id"`
	CampaignID    string       `json:"campaign_id"`
	StartTier     int          `json:"start_tier"`
	HaltedAtTier  int          `json:"halted_at_tier"`
	TiersRewarded []TierReward `json:"tiers_rewarded"`
}
