package settlement

import (
	"context"
	"time"

	"github.com/vendaforte/cartela-reward-service/internal/domain"
	"github.com/vendaforte/cartela-reward-service/internal/infrastructure/kafka"
	"github.com/vendaforte/cartela-reward-service/internal/infrastructure/metrics"
	settlementdto "github.com/vendaforte/cartela-reward-service/internal/usecase/dto/settlement"
	"gorm.io/gorm"
)

type SettlementUsecase interface {
	// PreviewBalances lists accounts holding spendable funds without
	// mutating anything.
	PreviewBalances(ctx context.Context) (*settlementdto.PreviewOutput, error)
	// GenerateBatch reserves every positive available balance into a new
	// batch of PENDING payout reports.
	GenerateBatch(ctx context.Context, cutoffDate time.Time, notes, adminID string) (*settlementdto.GenerateOutput, error)
	// ProcessBatch settles the batch. Already-paid reports are skipped, so
	// a partially failed run can be retried.
	ProcessBatch(ctx context.Context, batchNumber, notes, adminID string) (*settlementdto.ProcessOutput, error)
	// CancelBatch reverses every reservation and deletes the batch. Fails
	// if any report is already paid.
	CancelBatch(ctx context.Context, batchNumber, adminID string) (*settlementdto.CancelOutput, error)
	// GetBatch returns the reports of an existing batch.
	GetBatch(ctx context.Context, batchNumber string) (*settlementdto.BatchOutput, error)
}

type DefaultSettlementUsecase struct {
	DB          *gorm.DB
	AccountRepo domain.AccountRepository
	SaleRepo    domain.SaleRepository
	PayoutRepo  domain.PayoutRepository
	NotifyRepo  domain.NotificationRepository
	Publisher   *kafka.EventPublisher
	PayoutTopic string
	Metrics     *metrics.SettlementMetrics
}

func NewDefaultSettlementUsecase(
	db *gorm.DB,
	accountRepo domain.AccountRepository,
	saleRepo domain.SaleRepository,
	payoutRepo domain.PayoutRepository,
	notifyRepo domain.NotificationRepository,
	publisher *kafka.EventPublisher,
	payoutTopic string,
	settlementMetrics *metrics.SettlementMetrics) *DefaultSettlementUsecase {

	return &DefaultSettlementUsecase{
		DB:          db,
		AccountRepo: accountRepo,
		SaleRepo:    saleRepo,
		PayoutRepo:  payoutRepo,
		NotifyRepo:  notifyRepo,
		Publisher:   publisher,
		PayoutTopic: payoutTopic,
		Metrics:     settlementMetrics,
	}
}
