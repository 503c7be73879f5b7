package reward

import (
	"context"

	"github.com/vendaforte/cartela-reward-service/internal/domain"
	"github.com/vendaforte/cartela-reward-service/internal/infrastructure/kafka"
	"github.com/vendaforte/cartela-reward-service/internal/infrastructure/metrics"
	rewarddto "github.com/vendaforte/cartela-reward-service/internal/usecase/dto/reward"
	"gorm.io/gorm"
)

type RewardUsecase interface {
	// ValidateSale marks a pending sale as validated and runs the
	// completion cascade from the tier the sale counted toward, all in
	// one transaction.
	ValidateSale(ctx context.Context, saleID, adminID string) (*rewarddto.CascadeOutput, error)
	// RunCascade re-walks the tier ladder for a vendor/campaign starting
	// at the given tier. Safe to call repeatedly.
	RunCascade(ctx context.Context, vendorID, campaignID string, startTier int) (*rewarddto.CascadeOutput, error)
}

type DefaultRewardUsecase struct {
	DB             *gorm.DB
	SaleRepo       domain.SaleRepository
	AccountRepo    domain.AccountRepository
	CampaignRepo   domain.CampaignRepository
	EventRepo      domain.SpecialEventRepository
	CardTierRepo   domain.CardTierRepository
	CompletedRepo  domain.CompletedTierRepository
	NotifyRepo     domain.NotificationRepository
	Publisher      *kafka.EventPublisher
	RewardTopic    string
	Metrics        *metrics.RewardMetrics
}

func NewDefaultRewardUsecase(
	db *gorm.DB,
	saleRepo domain.SaleRepository,
	accountRepo domain.AccountRepository,
	campaignRepo domain.CampaignRepository,
	eventRepo domain.SpecialEventRepository,
	cardTierRepo domain.CardTierRepository,
	completedRepo domain.CompletedTierRepository,
	notifyRepo domain.NotificationRepository,
	publisher *kafka.EventPublisher,
	rewardTopic string,
	rewardMetrics *metrics.RewardMetrics) *DefaultRewardUsecase {

	return &DefaultRewardUsecase{
		DB:            db,
		SaleRepo:      saleRepo,
		AccountRepo:   accountRepo,
		CampaignRepo:  campaignRepo,
		EventRepo:     eventRepo,
		CardTierRepo:  cardTierRepo,
		CompletedRepo: completedRepo,
		NotifyRepo:    notifyRepo,
		Publisher:     publisher,
		RewardTopic:   rewardTopic,
		Metrics:       rewardMetrics,
	}
}
