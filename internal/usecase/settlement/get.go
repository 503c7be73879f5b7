package settlement

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/vendaforte/cartela-reward-service/internal/domain"
	settlementdto "github.com/vendaforte/cartela-reward-service/internal/usecase/dto/settlement"
)

func (uc *DefaultSettlementUsecase) GetBatch(ctx context.Context, batchNumber string) (*settlementdto.BatchOutput, error) {
	reports, err := uc.PayoutRepo.FindByBatchNumber(batchNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to load batch %s: %w", batchNumber, err)
	}
	if len(reports) == 0 {
		return nil, domain.ErrBatchNotFound
	}

	output := &settlementdto.BatchOutput{
		BatchNumber: batchNumber,
		Reports:     make([]settlementdto.ReportSummary, 0, len(reports)),
		TotalValue:  decimal.Zero,
	}
	for _, report := range reports {
		output.Reports = append(output.Reports, settlementdto.ReportSummary{
			ReportID:  report.ID,
			AccountID: report.AccountID,
			Kind:      string(report.Kind),
			Value:     report.Value,
			Status:    string(report.Status),
			SaleCount: len(report.IncludedSales),
			PaidAt:    report.PaidAt,
		})
		output.TotalValue = output.TotalValue.Add(report.Value)
	}
	return output, nil
}
