package repository

import (
	"errors"

	"github.com/vendaforte/cartela-reward-service/internal/domain"
	"github.com/vendaforte/cartela-reward-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultCompletedTierRepository struct {
	DB *gorm.DB
}

func NewDefaultCompletedTierRepository(db *gorm.DB) *DefaultCompletedTierRepository {
	return &DefaultCompletedTierRepository{DB: db}
}

func (r *DefaultCompletedTierRepository) WithTx(tx *gorm.DB) domain.CompletedTierRepository {
	return &DefaultCompletedTierRepository{DB: tx}
}

// Insert relies on the (vendor, campaign, tier) unique index as the
// at-most-once lock: a concurrent cascade losing the race gets
// ErrTierAlreadyCompleted, not a failure.
func (r *DefaultCompletedTierRepository) Insert(completed *domain.CompletedCardTier) error {
	model := &models.CompletedCardTierModel{
		ID:          completed.ID,
		VendorID:    completed.VendorID,
		CampaignID:  completed.CampaignID,
		TierNumber:  completed.TierNumber,
		CompletedAt: completed.CompletedAt,
	}

	if err := r.DB.Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrTierAlreadyCompleted
		}
		return err
	}
	return nil
}

func (r *DefaultCompletedTierRepository) Find(vendorID, campaignID string, tierNumber int) (*domain.CompletedCardTier, error) {
	var model models.CompletedCardTierModel
	err := r.DB.
		Where("vendor_id = ? AND campaign_id = ? AND tier_number = ?", vendorID, campaignID, tierNumber).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &domain.CompletedCardTier{
		ID:          model.ID,
		VendorID:    model.VendorID,
		CampaignID:  model.CampaignID,
		TierNumber:  model.TierNumber,
		CompletedAt: model.CompletedAt,
	}, nil
}
