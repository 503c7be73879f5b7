package settlement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendaforte/cartela-reward-service/internal/domain"
	"github.com/vendaforte/cartela-reward-service/internal/infrastructure/kafka"
	settlementdto "github.com/vendaforte/cartela-reward-service/internal/usecase/dto/settlement"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (uc *DefaultSettlementUsecase) GenerateBatch(ctx context.Context, cutoffDate time.Time, notes, adminID string) (*settlementdto.GenerateOutput, error) {
	var output *settlementdto.GenerateOutput

	err := uc.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		accountRepo := uc.AccountRepo.WithTx(tx)
		payoutRepo := uc.PayoutRepo.WithTx(tx)

		accounts, err := accountRepo.FindWithPositiveAvailable()
		if err != nil {
			return fmt.Errorf("failed to list accounts with positive balance: %w", err)
		}
		if len(accounts) == 0 {
			return domain.ErrNothingToSettle
		}

		batchNumber, err := nextBatchNumber(payoutRepo, time.Now())
		if err != nil {
			return err
		}

		salesByVendor, subordinates, err := uc.collectUnsettledSales(tx, accounts)
		if err != nil {
			return err
		}

		output = &settlementdto.GenerateOutput{
			BatchNumber: batchNumber,
			CutoffDate:  cutoffDate,
			Reports:     make([]settlementdto.ReportSummary, 0, len(accounts)),
			TotalValue:  decimal.Zero,
		}

		for _, account := range accounts {
			pending, err := payoutRepo.HasPendingForAccount(account.ID)
			if err != nil {
				return fmt.Errorf("failed to probe pending report for %s: %w", account.ID, err)
			}
			if pending {
				output.SkippedRows = append(output.SkippedRows, settlementdto.SkippedRow{
					AccountID: account.ID,
					Value:     account.AvailableBalance,
					Reason:    "account already has a pending report",
				})
				continue
			}

			includedSales := includedSalesFor(account, salesByVendor, subordinates)
			if len(includedSales) == 0 {
				zap.L().Warn("account holds positive balance with no backing sales, skipping",
					zap.String("account_id", account.ID),
					zap.String("balance", account.AvailableBalance.StringFixed(2)),
				)
				output.SkippedRows = append(output.SkippedRows, settlementdto.SkippedRow{
					AccountID: account.ID,
					Value:     account.AvailableBalance,
					Reason:    "no unsettled sales back this balance",
				})
				continue
			}

			report := &domain.PayoutReport{
				ID:            uuid.New().String(),
				BatchNumber:   batchNumber,
				AccountID:     account.ID,
				Kind:          reportKindFor(account),
				Value:         account.AvailableBalance,
				Status:        domain.ReportPending,
				IncludedSales: includedSales,
				CutoffDate:    cutoffDate,
				Notes:         notes,
				CreatedBy:     adminID,
			}
			if err := payoutRepo.Create(report); err != nil {
				return fmt.Errorf("failed to create payout report for %s: %w", account.ID, err)
			}
			if err := accountRepo.MoveAvailableToReserved(account.ID, report.Value); err != nil {
				return fmt.Errorf("failed to reserve balance of %s: %w", account.ID, err)
			}

			output.Reports = append(output.Reports, settlementdto.ReportSummary{
				ReportID:  report.ID,
				AccountID: report.AccountID,
				Kind:      string(report.Kind),
				Value:     report.Value,
				Status:    string(report.Status),
				SaleCount: len(report.IncludedSales),
			})
			output.TotalValue = output.TotalValue.Add(report.Value)
		}

		if len(output.Reports) == 0 {
			return domain.ErrNothingToSettle
		}

		zap.L().Info("payment batch generated",
			zap.String("batch_number", batchNumber),
			zap.Int("reports", len(output.Reports)),
			zap.Int("skipped", len(output.SkippedRows)),
			zap.String("total_value", output.TotalValue.StringFixed(2)),
			zap.String("generated_by", adminID),
		)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.Metrics != nil {
		uc.Metrics.BatchesGeneratedTotal.Inc()
		uc.Metrics.ReportsGeneratedTotal.Add(float64(len(output.Reports)))
		uc.Metrics.AmountReservedTotal.Add(output.TotalValue.InexactFloat64())
	}
	uc.publishPayoutEvent(kafka.PayoutEvent{
		BatchNumber: output.BatchNumber,
		Action:      "generated",
		Reports:     len(output.Reports),
		TotalValue:  output.TotalValue.StringFixed(2),
		AdminID:     adminID,
	})

	return output, nil
}

// collectUnsettledSales bulk-fetches the uncleared sales backing every
// account in one query instead of one query per account. Managers are
// backed by their subordinates' sales, so the subordinate map rides along.
func (uc *DefaultSettlementUsecase) collectUnsettledSales(tx *gorm.DB, accounts []*domain.UserAccount) (map[string][]string, map[string][]string, error) {
	accountRepo := uc.AccountRepo.WithTx(tx)

	managerIDs := make([]string, 0)
	vendorIDSet := make(map[string]bool)
	for _, account := range accounts {
		if account.Role == domain.RoleManager {
			managerIDs = append(managerIDs, account.ID)
		} else {
			vendorIDSet[account.ID] = true
		}
	}

	subordinates := make(map[string][]string)
	if len(managerIDs) > 0 {
		var err error
		subordinates, err = accountRepo.FindSubordinateIDs(managerIDs)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to resolve manager subordinates: %w", err)
		}
	}

	for _, vendorIDs := range subordinates {
		for _, id := range vendorIDs {
			vendorIDSet[id] = true
		}
	}
	allVendorIDs := make([]string, 0, len(vendorIDSet))
	for id := range vendorIDSet {
		allVendorIDs = append(allVendorIDs, id)
	}

	salesByVendor := make(map[string][]string)
	if len(allVendorIDs) > 0 {
		sales, err := uc.SaleRepo.WithTx(tx).FindUnsettledByVendorIDs(allVendorIDs)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to bulk-fetch unsettled sales: %w", err)
		}
		for _, sale := range sales {
			salesByVendor[sale.VendorID] = append(salesByVendor[sale.VendorID], sale.ID)
		}
	}

	return salesByVendor, subordinates, nil
}

func includedSalesFor(account *domain.UserAccount, salesByVendor, subordinates map[string][]string) []string {
	if account.Role != domain.RoleManager {
		return salesByVendor[account.ID]
	}
	included := make([]string, 0)
	for _, vendorID := range subordinates[account.ID] {
		included = append(included, salesByVendor[vendorID]...)
	}
	return included
}

func reportKindFor(account *domain.UserAccount) domain.ReportKind {
	if account.Role == domain.RoleManager {
		return domain.ReportKindManager
	}
	return domain.ReportKindVendor
}

func (uc *DefaultSettlementUsecase) publishPayoutEvent(event kafka.PayoutEvent) {
	if uc.Publisher == nil {
		return
	}
	go func() {
		if err := uc.Publisher.PublishPayout(uc.PayoutTopic, event); err != nil {
			zap.L().Error("failed to publish PayoutEvent", zap.Error(err))
		}
	}()
}
