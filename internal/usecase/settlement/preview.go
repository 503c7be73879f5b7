package settlement

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	settlementdto "github.com/vendaforte/cartela-reward-service/internal/usecase/dto/settlement"
)

func (uc *DefaultSettlementUsecase) PreviewBalances(ctx context.Context) (*settlementdto.PreviewOutput, error) {
	accounts, err := uc.AccountRepo.FindWithPositiveAvailable()
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts with positive balance: %w", err)
	}

	output := &settlementdto.PreviewOutput{
		Rows:           make([]settlementdto.PreviewRow, 0, len(accounts)),
		TotalAvailable: decimal.Zero,
		TotalReserved:  decimal.Zero,
		Accounts:       len(accounts),
	}

	for _, account := range accounts {
		output.Rows = append(output.Rows, settlementdto.PreviewRow{
			AccountID:        account.ID,
			AccountName:      account.Name,
			Kind:             string(account.Role),
			AvailableBalance: account.AvailableBalance,
			ReservedBalance:  account.ReservedBalance,
		})
		output.TotalAvailable = output.TotalAvailable.Add(account.AvailableBalance)
		output.TotalReserved = output.TotalReserved.Add(account.ReservedBalance)
	}

	return output, nil
}
