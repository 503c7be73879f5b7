package models

import "time"

type CardTierRuleModel struct {
	ID           string             `gorm:"primaryKey;type:uuid"`
	CampaignID   string             `gorm:"type:uuid;not null;uniqueIndex:uq_campaign_tier"`
	TierNumber   int                `gorm:"not null;uniqueIndex:uq_campaign_tier"`
	Description  string
	Requirements []RequirementModel `gorm:"foreignKey:CardTierRuleID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt    time.Time
}

func (CardTierRuleModel) TableName() string {
	return "card_tier_rules"
}

type RequirementModel struct {
	ID               string           `gorm:"primaryKey;type:uuid"`
	CardTierRuleID   string           `gorm:"type:uuid;not null;uniqueIndex:uq_tier_ordinal"`
	Description      string
	RequiredQuantity int              `gorm:"not null"`
	UnitType         string
	Ordinal          int              `gorm:"not null;uniqueIndex:uq_tier_ordinal"`
	Conditions       []ConditionModel `gorm:"foreignKey:RequirementID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (RequirementModel) TableName() string {
	return "requirements"
}

type ConditionModel struct {
	ID            string `gorm:"primaryKey;type:uuid"`
	RequirementID string `gorm:"type:uuid;not null;index:idx_condition_requirement"`
	Field         string `gorm:"not null"`
	Operator      string `gorm:"not null"`
	Value         string
}

func (ConditionModel) TableName() string {
	return "requirement_conditions"
}

type CompletedCardTierModel struct {
	ID          string    `gorm:"primaryKey;type:uuid"`
	VendorID    string    `gorm:"type:uuid;not null;uniqueIndex:uq_vendor_campaign_tier"`
	CampaignID  string    `gorm:"type:uuid;not null;uniqueIndex:uq_vendor_campaign_tier"`
	TierNumber  int       `gorm:"not null;uniqueIndex:uq_vendor_campaign_tier"`
	CompletedAt time.Time `gorm:"not null"`
}

func (CompletedCardTierModel) TableName() string {
	return "completed_card_tiers"
}
