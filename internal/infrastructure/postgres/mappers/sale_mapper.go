package mappers

import (
	"github.com/vendaforte/cartela-reward-service/internal/domain"
	"github.com/vendaforte/cartela-reward-service/internal/infrastructure/postgres/models"
)

func ToDomainSale(model *models.SaleSubmissionModel) *domain.SaleSubmission {
	return &domain.SaleSubmission{
		ID:                   model.ID,
		VendorID:             model.VendorID,
		CampaignID:           model.CampaignID,
		RequirementID:        model.RequirementID,
		OrderNumber:          model.OrderNumber,
		Status:               model.Status,
		SubmittedAt:          model.SubmittedAt,
		ValidatedAt:          model.ValidatedAt,
		BaseRewardValue:      model.BaseRewardValue,
		AppliedMultiplier:    model.AppliedMultiplier,
		FinalValueWithEvent:  model.FinalValueWithEvent,
		CardTierAttained:     model.CardTierAttained,
		RewardAddedToBalance: model.RewardAddedToBalance,
		RewardSettled:        model.RewardSettled,
	}
}

func ToGORMSale(sale *domain.SaleSubmission) *models.SaleSubmissionModel {
	return &models.SaleSubmissionModel{
		ID:                   sale.ID,
		VendorID:             sale.VendorID,
		CampaignID:           sale.CampaignID,
		RequirementID:        sale.RequirementID,
		OrderNumber:          sale.OrderNumber,
		Status:               sale.Status,
		SubmittedAt:          sale.SubmittedAt,
		ValidatedAt:          sale.ValidatedAt,
		BaseRewardValue:      sale.BaseRewardValue,
		AppliedMultiplier:    sale.AppliedMultiplier,
		FinalValueWithEvent:  sale.FinalValueWithEvent,
		CardTierAttained:     sale.CardTierAttained,
		RewardAddedToBalance: sale.RewardAddedToBalance,
		RewardSettled:        sale.RewardSettled,
	}
}
