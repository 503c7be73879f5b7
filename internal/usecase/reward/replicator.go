package reward

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vendaforte/cartela-reward-service/internal/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ensureNextTierExists clones the completed tier's requirement structure
// into tier+1 when it is missing, so the ladder never runs out. Ordinals
// are copied verbatim: they are the join key the evaluator counts sales
// against in the new tier.
func (uc *DefaultRewardUsecase) ensureNextTierExists(tx *gorm.DB, campaignID string, completedTierNumber int) error {
	cardTierRepo := uc.CardTierRepo.WithTx(tx)

	nextTier := completedTierNumber + 1
	exists, err := cardTierRepo.TierExists(campaignID, nextTier)
	if err != nil {
		return fmt.Errorf("failed to probe tier %d: %w", nextTier, err)
	}
	if exists {
		return nil
	}

	source, err := cardTierRepo.GetByCampaignAndTier(campaignID, completedTierNumber)
	if err != nil {
		return fmt.Errorf("failed to load source tier %d: %w", completedTierNumber, err)
	}

	if len(source.Requirements) == 0 {
		zap.L().Warn("completed tier has no requirements, skipping replication",
			zap.String("campaign_id", campaignID),
			zap.Int("tier_number", completedTierNumber),
		)
		return nil
	}

	clone := &domain.CardTierRule{
		ID:          uuid.New().String(),
		CampaignID:  campaignID,
		TierNumber:  nextTier,
		Description: source.Description,
		CreatedAt:   time.Now(),
	}

	clone.Requirements = make([]domain.Requirement, len(source.Requirements))
	for i, req := range source.Requirements {
		newReq := domain.Requirement{
			ID:               uuid.New().String(),
			CardTierRuleID:   clone.ID,
			Description:      req.Description,
			RequiredQuantity: req.RequiredQuantity,
			UnitType:         req.UnitType,
			Ordinal:          req.Ordinal,
		}
		newReq.Conditions = make([]domain.Condition, len(req.Conditions))
		for j, cond := range req.Conditions {
			newReq.Conditions[j] = domain.Condition{
				ID:            uuid.New().String(),
				RequirementID: newReq.ID,
				Field:         cond.Field,
				Operator:      cond.Operator,
				Value:         cond.Value,
			}
		}
		clone.Requirements[i] = newReq
	}

	if err := cardTierRepo.Create(clone); err != nil {
		return fmt.Errorf("failed to replicate tier %d: %w", nextTier, err)
	}

	if uc.Metrics != nil {
		uc.Metrics.RecordTierReplicated(campaignID)
	}
	return nil
}
