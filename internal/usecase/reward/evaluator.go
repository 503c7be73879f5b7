package reward

import (
	"errors"
	"fmt"

	"github.com/vendaforte/cartela-reward-service/internal/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// isTierComplete checks whether every requirement of the tier has enough
// validated sales counted against its ordinal. A missing tier or a tier
// with no requirements is never complete, so an empty structure can never
// trigger an accidental reward.
func (uc *DefaultRewardUsecase) isTierComplete(tx *gorm.DB, campaignID, vendorID string, tierNumber int) (bool, error) {
	tier, err := uc.CardTierRepo.WithTx(tx).GetByCampaignAndTier(campaignID, tierNumber)
	if err != nil {
		if errors.Is(err, domain.ErrTierNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to load tier %d: %w", tierNumber, err)
	}

	if len(tier.Requirements) == 0 {
		return false, nil
	}

	counts, err := uc.SaleRepo.WithTx(tx).CountValidatedByOrdinal(vendorID, campaignID, tierNumber)
	if err != nil {
		return false, fmt.Errorf("failed to count sales for tier %d: %w", tierNumber, err)
	}

	if counts.Unresolved > 0 {
		zap.L().Warn("validated sales with unresolvable requirement reference excluded from tier count",
			zap.String("vendor_id", vendorID),
			zap.String("campaign_id", campaignID),
			zap.Int("tier_number", tierNumber),
			zap.Int64("unresolved", counts.Unresolved),
		)
	}

	for _, req := range tier.Requirements {
		if counts.Counts[req.Ordinal] < int64(req.RequiredQuantity) {
			return false, nil
		}
	}
	return true, nil
}
