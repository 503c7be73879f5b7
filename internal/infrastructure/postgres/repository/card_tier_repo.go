package repository

import (
	"errors"

	"github.com/vendaforte/cartela-reward-service/internal/domain"
	"github.com/vendaforte/cartela-reward-service/internal/infrastructure/postgres/mappers"
	"github.com/vendaforte/cartela-reward-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultCardTierRepository struct {
	DB *gorm.DB
}

func NewDefaultCardTierRepository(db *gorm.DB) *DefaultCardTierRepository {
	return &DefaultCardTierRepository{DB: db}
}

func (r *DefaultCardTierRepository) WithTx(tx *gorm.DB) domain.CardTierRepository {
	return &DefaultCardTierRepository{DB: tx}
}

func (r *DefaultCardTierRepository) GetByCampaignAndTier(campaignID string, tierNumber int) (*domain.CardTierRule, error) {
	var model models.CardTierRuleModel
	err := r.DB.
		Preload("Requirements").
		Preload("Requirements.Conditions").
		Where("campaign_id = ? AND tier_number = ?", campaignID, tierNumber).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTierNotFound
		}
		return nil, err
	}
	return mappers.ToDomainCardTier(&model), nil
}

func (r *DefaultCardTierRepository) TierExists(campaignID string, tierNumber int) (bool, error) {
	var count int64
	err := r.DB.Model(&models.CardTierRuleModel{}).
		Where("campaign_id = ? AND tier_number = ?", campaignID, tierNumber).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *DefaultCardTierRepository) TierNumberForRequirement(requirementID string) (int, error) {
	var row struct {
		TierNumber int
	}
	err := r.DB.Model(&models.RequirementModel{}).
		Select("card_tier_rules.tier_number AS tier_number").
		Joins("JOIN card_tier_rules ON card_tier_rules.id = requirements.card_tier_rule_id").
		Where("requirements.id = ?", requirementID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, domain.ErrTierNotFound
		}
		return 0, err
	}
	return row.TierNumber, nil
}

func (r *DefaultCardTierRepository) Create(tier *domain.CardTierRule) error {
	seen := make(map[int]bool, len(tier.Requirements))
	for _, req := range tier.Requirements {
		if seen[req.Ordinal] {
			return domain.ErrDuplicateOrdinal
		}
		seen[req.Ordinal] = true
	}

	model := mappers.ToGORMCardTier(tier)
	if err := r.DB.Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateOrdinal
		}
		return err
	}
	return nil
}
