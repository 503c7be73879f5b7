package settlement

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/vendaforte/cartela-reward-service/internal/domain"
	"github.com/vendaforte/cartela-reward-service/internal/infrastructure/postgres/repository"
	"github.com/vendaforte/cartela-reward-service/internal/testutil"
)

func TestNextBatchNumberStartsMonthAtOne(t *testing.T) {
	db := testutil.NewTestDB(t)
	payoutRepo := repository.NewDefaultPayoutRepository(db)

	number, err := nextBatchNumber(payoutRepo, time.Date(2025, time.November, 5, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, "LOTE-2025-11-001", number)
}

func TestNextBatchNumberIncrementsWithinMonth(t *testing.T) {
	db := testutil.NewTestDB(t)
	payoutRepo := repository.NewDefaultPayoutRepository(db)

	for _, batchNumber := range []string{"LOTE-2025-11-003", "LOTE-2025-11-009", "LOTE-2025-10-099"} {
		require.NoError(t, payoutRepo.Create(&domain.PayoutReport{
			ID:          uuid.New().String(),
			BatchNumber: batchNumber,
			AccountID:   uuid.New().String(),
			Kind:        domain.ReportKindVendor,
			Value:       decimal.NewFromInt(1),
			Status:      domain.ReportPaid,
			CutoffDate:  time.Now(),
		}))
	}

	number, err := nextBatchNumber(payoutRepo, time.Date(2025, time.November, 20, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, "LOTE-2025-11-010", number)
}

func TestNextBatchNumberSurvivesThreeDigitOverflow(t *testing.T) {
	db := testutil.NewTestDB(t)
	payoutRepo := repository.NewDefaultPayoutRepository(db)

	for _, batchNumber := range []string{"LOTE-2025-11-999", "LOTE-2025-11-1000"} {
		require.NoError(t, payoutRepo.Create(&domain.PayoutReport{
			ID:          uuid.New().String(),
			BatchNumber: batchNumber,
			AccountID:   uuid.New().String(),
			Kind:        domain.ReportKindVendor,
			Value:       decimal.NewFromInt(1),
			Status:      domain.ReportPaid,
			CutoffDate:  time.Now(),
		}))
	}

	number, err := nextBatchNumber(payoutRepo, time.Date(2025, time.November, 30, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, "LOTE-2025-11-1001", number)
}

func TestNextBatchNumberIgnoresOtherMonths(t *testing.T) {
	db := testutil.NewTestDB(t)
	payoutRepo := repository.NewDefaultPayoutRepository(db)

	require.NoError(t, payoutRepo.Create(&domain.PayoutReport{
		ID:          uuid.New().String(),
		BatchNumber: "LOTE-2025-11-042",
		AccountID:   uuid.New().String(),
		Kind:        domain.ReportKindVendor,
		Value:       decimal.NewFromInt(1),
		Status:      domain.ReportPaid,
		CutoffDate:  time.Now(),
	}))

	number, err := nextBatchNumber(payoutRepo, time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, "LOTE-2025-12-001", number)
}
