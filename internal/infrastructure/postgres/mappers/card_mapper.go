package mappers

import (
	"github.com/vendaforte/cartela-reward-service/internal/domain"
	"github.com/vendaforte/cartela-reward-service/internal/infrastructure/postgres/models"
)

func ToDomainCardTier(model *models.CardTierRuleModel) *domain.CardTierRule {
	requirements := make([]domain.Requirement, len(model.Requirements))
	for i, req := range model.Requirements {
		requirements[i] = *ToDomainRequirement(&req)
	}

	return &domain.CardTierRule{
		ID:           model.ID,
		CampaignID:   model.CampaignID,
		TierNumber:   model.TierNumber,
		Description:  model.Description,
		Requirements: requirements,
		CreatedAt:    model.CreatedAt,
	}
}

func ToDomainRequirement(model *models.RequirementModel) *domain.Requirement {
	conditions := make([]domain.Condition, len(model.Conditions))
	for i, cond := range model.Conditions {
		conditions[i] = domain.Condition{
			ID:            cond.ID,
			RequirementID: cond.RequirementID,
			Field:         cond.Field,
			Operator:      cond.Operator,
			Value:         cond.Value,
		}
	}

	return &domain.Requirement{
		ID:               model.ID,
		CardTierRuleID:   model.CardTierRuleID,
		Description:      model.Description,
		RequiredQuantity: model.RequiredQuantity,
		UnitType:         model.UnitType,
		Ordinal:          model.Ordinal,
		Conditions:       conditions,
	}
}

func ToGORMCardTier(tier *domain.CardTierRule) *models.CardTierRuleModel {
	requirements := make([]models.RequirementModel, len(tier.Requirements))
	for i, req := range tier.Requirements {
		conditions := make([]models.ConditionModel, len(req.Conditions))
		for j, cond := range req.Conditions {
			conditions[j] = models.ConditionModel{
				ID:            cond.ID,
				RequirementID: cond.RequirementID,
				Field:         cond.Field,
				Operator:      cond.Operator,
				Value:         cond.Value,
			}
		}
		requirements[i] = models.RequirementModel{
			ID:               req.ID,
			CardTierRuleID:   req.CardTierRuleID,
			Description:      req.Description,
			RequiredQuantity: req.RequiredQuantity,
			UnitType:         req.UnitType,
			Ordinal:          req.Ordinal,
			Conditions:       conditions,
		}
	}

	return &models.CardTierRuleModel{
		ID:           tier.ID,
		CampaignID:   tier.CampaignID,
		TierNumber:   tier.TierNumber,
		Description:  tier.Description,
		Requirements: requirements,
		CreatedAt:    tier.CreatedAt,
	}
}
