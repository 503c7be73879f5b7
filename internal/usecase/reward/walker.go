package reward

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vendaforte/cartela-reward-service/internal/domain"
	"github.com/vendaforte/cartela-reward-service/internal/infrastructure/kafka"
	rewarddto "github.com/vendaforte/cartela-reward-service/internal/usecase/dto/reward"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (uc *DefaultRewardUsecase) ValidateSale(ctx context.Context, saleID, adminID string) (*rewarddto.CascadeOutput, error) {
	var output *rewarddto.CascadeOutput

	err := uc.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		saleRepo := uc.SaleRepo.WithTx(tx)

		sale, err := saleRepo.GetByID(saleID)
		if err != nil {
			return err
		}
		if sale.Status != domain.SalePendingReview {
			return domain.ErrSaleNotPending
		}
		if sale.RequirementID == nil {
			return domain.ErrSaleWithoutTier
		}

		tierNumber, err := uc.CardTierRepo.WithTx(tx).TierNumberForRequirement(*sale.RequirementID)
		if err != nil {
			if errors.Is(err, domain.ErrTierNotFound) {
				return domain.ErrSaleWithoutTier
			}
			return err
		}

		if err := saleRepo.MarkValidated(saleID, tierNumber, time.Now()); err != nil {
			return fmt.Errorf("failed to validate sale %s: %w", saleID, err)
		}

		zap.L().Info("sale validated",
			zap.String("sale_id", saleID),
			zap.String("vendor_id", sale.VendorID),
			zap.Int("tier_number", tierNumber),
			zap.String("validated_by", adminID),
		)

		output, err = uc.walk(tx, sale.VendorID, sale.CampaignID, tierNumber)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.afterCascade(output)
	return output, nil
}

func (uc *DefaultRewardUsecase) RunCascade(ctx context.Context, vendorID, campaignID string, startTier int) (*rewarddto.CascadeOutput, error) {
	var output *rewarddto.CascadeOutput

	err := uc.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		output, err = uc.walk(tx, vendorID, campaignID, startTier)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.afterCascade(output)
	return output, nil
}

// walk climbs the tier ladder one tier at a time. The only halting
// condition is genuine incompleteness: an already-processed tier skips
// the reward but still replicates and advances, otherwise tiers
// completed earlier by spillover would strand every tier above them.
func (uc *DefaultRewardUsecase) walk(tx *gorm.DB, vendorID, campaignID string, startTier int) (*rewarddto.CascadeOutput, error) {
	campaign, err := uc.CampaignRepo.WithTx(tx).GetByID(campaignID)
	if err != nil {
		return nil, err
	}
	vendor, err := uc.AccountRepo.WithTx(tx).GetByID(vendorID)
	if err != nil {
		return nil, err
	}

	output := &rewarddto.CascadeOutput{
		VendorID:      vendorID,
		CampaignID:    campaignID,
		StartTier:     startTier,
		TiersRewarded: make([]rewarddto.TierReward, 0),
	}

	completedRepo := uc.CompletedRepo.WithTx(tx)

	for tierNumber := startTier; ; tierNumber++ {
		complete, err := uc.isTierComplete(tx, campaignID, vendorID, tierNumber)
		if err != nil {
			return nil, err
		}
		if !complete {
			output.HaltedAtTier = tierNumber
			break
		}

		alreadyProcessed := false
		err = completedRepo.Insert(&domain.CompletedCardTier{
			ID:          uuid.New().String(),
			VendorID:    vendorID,
			CampaignID:  campaignID,
			TierNumber:  tierNumber,
			CompletedAt: time.Now(),
		})
		if err != nil {
			if !errors.Is(err, domain.ErrTierAlreadyCompleted) {
				return nil, fmt.Errorf("failed to record tier completion: %w", err)
			}
			alreadyProcessed = true
		}

		if !alreadyProcessed {
			applied, err := uc.applyRewards(tx, campaign, vendor, tierNumber)
			if err != nil {
				return nil, err
			}
			if applied != nil {
				output.TiersRewarded = append(output.TiersRewarded, *applied)
			}
		} else {
			zap.L().Debug("tier already rewarded, continuing cascade",
				zap.String("vendor_id", vendorID),
				zap.String("campaign_id", campaignID),
				zap.Int("tier_number", tierNumber),
			)
		}

		if err := uc.ensureNextTierExists(tx, campaignID, tierNumber); err != nil {
			return nil, err
		}
	}

	return output, nil
}

// afterCascade records metrics and publishes events once the transaction
// has committed. Both are cosmetic side effects.
func (uc *DefaultRewardUsecase) afterCascade(output *rewarddto.CascadeOutput) {
	if output == nil {
		return
	}

	if uc.Metrics != nil {
		uc.Metrics.RecordCascadeDepth(output.CampaignID, output.HaltedAtTier-output.StartTier+1)
		for _, reward := range output.TiersRewarded {
			uc.Metrics.RecordTierCompleted(output.CampaignID,
				reward.VendorAmount.InexactFloat64(),
				reward.ManagerAmount.InexactFloat64())
		}
	}

	if uc.Publisher == nil {
		return
	}
	for _, reward := range output.TiersRewarded {
		go func(event kafka.RewardEvent) {
			if err := uc.Publisher.PublishReward(uc.RewardTopic, event); err != nil {
				zap.L().Error("failed to publish RewardEvent", zap.Error(err))
			}
		}(kafka.RewardEvent{
			VendorID:      output.VendorID,
			CampaignID:    output.CampaignID,
			TierNumber:    reward.TierNumber,
			VendorAmount:  reward.VendorAmount.StringFixed(2),
			ManagerAmount: reward.ManagerAmount.StringFixed(2),
			EventNames:    reward.EventNames,
		})
	}
}
