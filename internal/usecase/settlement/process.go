package settlement

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vendaforte/cartela-reward-service/internal/domain"
	"github.com/vendaforte/cartela-reward-service/internal/infrastructure/kafka"
	settlementdto "github.com/vendaforte/cartela-reward-service/internal/usecase/dto/settlement"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (uc *DefaultSettlementUsecase) ProcessBatch(ctx context.Context, batchNumber, notes, adminID string) (*settlementdto.ProcessOutput, error) {
	started := time.Now()
	var output *settlementdto.ProcessOutput

	err := uc.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		accountRepo := uc.AccountRepo.WithTx(tx)
		saleRepo := uc.SaleRepo.WithTx(tx)
		payoutRepo := uc.PayoutRepo.WithTx(tx)

		reports, err := payoutRepo.FindByBatchNumber(batchNumber)
		if err != nil {
			return fmt.Errorf("failed to load batch %s: %w", batchNumber, err)
		}
		if len(reports) == 0 {
			return domain.ErrBatchNotFound
		}

		output = &settlementdto.ProcessOutput{
			BatchNumber: batchNumber,
			TotalValue:  decimal.Zero,
		}

		now := time.Now()
		for _, report := range reports {
			if report.Status == domain.ReportPaid {
				output.ReportsSkipped++
				continue
			}

			if err := accountRepo.SubReserved(report.AccountID, report.Value); err != nil {
				return fmt.Errorf("failed to debit reserved balance of %s: %w", report.AccountID, err)
			}

			// A manager report lists subordinate sales for audit only.
			// Those sales are liquidated exactly once, through the owning
			// vendor's report.
			if report.Kind == domain.ReportKindVendor && len(report.IncludedSales) > 0 {
				if err := saleRepo.MarkSettled(report.IncludedSales); err != nil {
					return fmt.Errorf("failed to settle sales of report %s: %w", report.ID, err)
				}
				output.SalesSettled += len(report.IncludedSales)
			}

			if err := payoutRepo.MarkPaid(report.ID, now, notes); err != nil {
				return fmt.Errorf("failed to mark report %s paid: %w", report.ID, err)
			}

			uc.notifyAccount(tx, report.AccountID, fmt.Sprintf(
				"Pagamento do lote %s efetuado: R$ %s.", batchNumber, report.Value.StringFixed(2)))

			output.ReportsPaid++
			output.TotalValue = output.TotalValue.Add(report.Value)
		}

		output.AlreadySettled = output.ReportsPaid == 0

		zap.L().Info("payment batch processed",
			zap.String("batch_number", batchNumber),
			zap.Int("reports_paid", output.ReportsPaid),
			zap.Int("reports_skipped", output.ReportsSkipped),
			zap.Int("sales_settled", output.SalesSettled),
			zap.String("total_value", output.TotalValue.StringFixed(2)),
			zap.String("processed_by", adminID),
		)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.Metrics != nil {
		uc.Metrics.BatchesProcessedTotal.Inc()
		uc.Metrics.ReportsProcessedTotal.Add(float64(output.ReportsPaid))
		uc.Metrics.AmountSettledTotal.Add(output.TotalValue.InexactFloat64())
		uc.Metrics.SettlementDuration.Observe(time.Since(started).Seconds())
	}
	if output.ReportsPaid > 0 {
		uc.publishPayoutEvent(kafka.PayoutEvent{
			BatchNumber: batchNumber,
			Action:      "processed",
			Reports:     output.ReportsPaid,
			TotalValue:  output.TotalValue.StringFixed(2),
			AdminID:     adminID,
		})
	}

	return output, nil
}

// notifyAccount is best-effort: a failed notification write never rolls
// back the settlement.
func (uc *DefaultSettlementUsecase) notifyAccount(tx *gorm.DB, accountID, message string) {
	if err := uc.NotifyRepo.WithTx(tx).Create(&domain.Notification{
		UserID:  accountID,
		Message: message,
	}); err != nil {
		zap.L().Warn("failed to create settlement notification",
			zap.String("account_id", accountID),
			zap.Error(err),
		)
	}
}
