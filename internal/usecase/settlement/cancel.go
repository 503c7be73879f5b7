package settlement

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/vendaforte/cartela-reward-service/internal/domain"
	"github.com/vendaforte/cartela-reward-service/internal/infrastructure/kafka"
	settlementdto "github.com/vendaforte/cartela-reward-service/internal/usecase/dto/settlement"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (uc *DefaultSettlementUsecase) CancelBatch(ctx context.Context, batchNumber, adminID string) (*settlementdto.CancelOutput, error) {
	var output *settlementdto.CancelOutput

	err := uc.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		accountRepo := uc.AccountRepo.WithTx(tx)
		payoutRepo := uc.PayoutRepo.WithTx(tx)

		reports, err := payoutRepo.FindByBatchNumber(batchNumber)
		if err != nil {
			return fmt.Errorf("failed to load batch %s: %w", batchNumber, err)
		}
		if len(reports) == 0 {
			return domain.ErrBatchNotFound
		}

		for _, report := range reports {
			if report.Status == domain.ReportPaid {
				return domain.ErrBatchNotCancelable
			}
		}

		output = &settlementdto.CancelOutput{
			BatchNumber:   batchNumber,
			TotalReleased: decimal.Zero,
		}

		for _, report := range reports {
			if err := accountRepo.MoveReservedToAvailable(report.AccountID, report.Value); err != nil {
				return fmt.Errorf("failed to release reservation of %s: %w", report.AccountID, err)
			}
			output.ReportsReleased++
			output.TotalReleased = output.TotalReleased.Add(report.Value)
		}

		if err := payoutRepo.DeleteByBatchNumber(batchNumber); err != nil {
			return fmt.Errorf("failed to delete batch %s: %w", batchNumber, err)
		}

		zap.L().Info("payment batch cancelled",
			zap.String("batch_number", batchNumber),
			zap.Int("reports_released", output.ReportsReleased),
			zap.String("total_released", output.TotalReleased.StringFixed(2)),
			zap.String("cancelled_by", adminID),
		)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.Metrics != nil {
		uc.Metrics.BatchesCancelledTotal.Inc()
	}
	uc.publishPayoutEvent(kafka.PayoutEvent{
		BatchNumber: batchNumber,
		Action:      "cancelled",
		Reports:     output.ReportsReleased,
		TotalValue:  output.TotalReleased.StringFixed(2),
		AdminID:     adminID,
	})

	return output, nil
}
