package reward

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vendaforte/cartela-reward-service/internal/domain"
	rewarddto "github.com/vendaforte/cartela-reward-service/internal/usecase/dto/reward"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// applyRewards credits every validated, not-yet-credited sale of the tier.
// The manager commission is computed on the pre-multiplier total: event
// bonuses raise the vendor reward, never the commission base.
func (uc *DefaultRewardUsecase) applyRewards(
	tx *gorm.DB,
	campaign *domain.Campaign,
	vendor *domain.UserAccount,
	tierNumber int,
) (*rewarddto.TierReward, error) {

	saleRepo := uc.SaleRepo.WithTx(tx)
	eventRepo := uc.EventRepo.WithTx(tx)
	accountRepo := uc.AccountRepo.WithTx(tx)

	sales, err := saleRepo.FindUncredited(vendor.ID, campaign.ID, tierNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to load uncredited sales for tier %d: %w", tierNumber, err)
	}
	if len(sales) == 0 {
		zap.L().Info("tier completed with no uncredited sales, nothing to apply",
			zap.String("vendor_id", vendor.ID),
			zap.String("campaign_id", campaign.ID),
			zap.Int("tier_number", tierNumber),
		)
		return nil, nil
	}

	totalOriginal := decimal.Zero
	totalFinal := decimal.Zero
	eventNames := make([]string, 0)
	seenEvents := make(map[string]bool)

	for _, sale := range sales {
		multiplier := decimal.NewFromInt(1)

		// The promotional window is matched against the submission
		// timestamp, not the validation timestamp.
		event, err := eventRepo.FindActiveAt(campaign.ID, sale.SubmittedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve special event for sale %s: %w", sale.ID, err)
		}
		if event != nil {
			multiplier = event.Multiplier
			if !seenEvents[event.Name] {
				seenEvents[event.Name] = true
				eventNames = append(eventNames, event.Name)
			}
		}

		finalValue := sale.BaseRewardValue.Mul(multiplier)
		if err := saleRepo.ApplyReward(sale.ID, multiplier, finalValue); err != nil {
			return nil, fmt.Errorf("failed to persist reward for sale %s: %w", sale.ID, err)
		}

		totalOriginal = totalOriginal.Add(sale.BaseRewardValue)
		totalFinal = totalFinal.Add(finalValue)
	}

	if err := accountRepo.AddAvailable(vendor.ID, totalFinal); err != nil {
		return nil, fmt.Errorf("failed to credit vendor %s: %w", vendor.ID, err)
	}

	managerAmount := decimal.Zero
	if vendor.ManagerID != nil && campaign.ManagerPercentage.IsPositive() {
		managerAmount = totalOriginal.Mul(campaign.ManagerPercentage)
		if err := accountRepo.AddAvailable(*vendor.ManagerID, managerAmount); err != nil {
			return nil, fmt.Errorf("failed to credit manager %s: %w", *vendor.ManagerID, err)
		}
	}

	uc.notifyVendor(tx, vendor.ID, tierNumber, totalFinal, eventNames)

	return &rewarddto.TierReward{
		TierNumber:    tierNumber,
		SalesCredited: len(sales),
		VendorAmount:  totalFinal,
		ManagerAmount: managerAmount,
		EventNames:    eventNames,
	}, nil
}

// notifyVendor writes the congratulation record. The write is cosmetic:
// a failure is logged and swallowed, balance and ledger writes stay strict.
func (uc *DefaultRewardUsecase) notifyVendor(tx *gorm.DB, vendorID string, tierNumber int, amount decimal.Decimal, eventNames []string) {
	message := fmt.Sprintf("Cartela %d concluída! R$ %s creditado ao seu saldo.", tierNumber, amount.StringFixed(2))
	if len(eventNames) > 0 {
		message += fmt.Sprintf(" Eventos aplicados: %s.", strings.Join(eventNames, ", "))
	}

	if err := uc.NotifyRepo.WithTx(tx).Create(&domain.Notification{
		UserID:  vendorID,
		Message: message,
	}); err != nil {
		zap.L().Warn("failed to create reward notification",
			zap.String("vendor_id", vendorID),
			zap.Int("tier_number", tierNumber),
			zap.Error(err),
		)
	}
}
