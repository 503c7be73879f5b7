package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/vendaforte/cartela-reward-service/internal/config"
	"github.com/vendaforte/cartela-reward-service/internal/delivery/httpapi"
	"github.com/vendaforte/cartela-reward-service/internal/infrastructure/kafka"
	"github.com/vendaforte/cartela-reward-service/internal/infrastructure/logger"
	"github.com/vendaforte/cartela-reward-service/internal/infrastructure/metrics"
	"github.com/vendaforte/cartela-reward-service/internal/infrastructure/migrate"
	"github.com/vendaforte/cartela-reward-service/internal/infrastructure/postgres"
	"github.com/vendaforte/cartela-reward-service/internal/infrastructure/postgres/repository"
	"github.com/vendaforte/cartela-reward-service/internal/usecase/reward"
	"github.com/vendaforte/cartela-reward-service/internal/usecase/settlement"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	// Init logger
	zlog := logger.MustInit(cfg)
	defer zlog.Sync()
	// Init database
	db := postgres.MustInitDB(cfg)

	if cfg.Migrations.Path != "" {
		if err := migrate.RunMigrations(db, cfg.Migrations.Path); err != nil {
			zlog.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Init kafka publisher
	var publisher *kafka.EventPublisher
	if cfg.KafkaService.Enabled {
		brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
		publisher = kafka.NewEventPublisher(brokers)
		defer publisher.Close()
	}

	// Init repositories
	accountRepo := repository.NewDefaultAccountRepository(db)
	campaignRepo := repository.NewDefaultCampaignRepository(db)
	eventRepo := repository.NewDefaultSpecialEventRepository(db)
	cardTierRepo := repository.NewDefaultCardTierRepository(db)
	completedRepo := repository.NewDefaultCompletedTierRepository(db)
	saleRepo := repository.NewDefaultSaleRepository(db)
	payoutRepo := repository.NewDefaultPayoutRepository(db)
	notifyRepo := repository.NewDefaultNotificationRepository(db)

	// Init metrics
	rewardMetrics := metrics.NewRewardMetrics()
	settlementMetrics := metrics.NewSettlementMetrics()

	// Init usecases
	rewardUsecase := reward.NewDefaultRewardUsecase(
		db,
		saleRepo,
		accountRepo,
		campaignRepo,
		eventRepo,
		cardTierRepo,
		completedRepo,
		notifyRepo,
		publisher,
		cfg.KafkaService.RewardTopic,
		rewardMetrics,
	)
	settlementUsecase := settlement.NewDefaultSettlementUsecase(
		db,
		accountRepo,
		saleRepo,
		payoutRepo,
		notifyRepo,
		publisher,
		cfg.KafkaService.PayoutTopic,
		settlementMetrics,
	)

	// HTTP server
	handler := httpapi.NewHandler(rewardUsecase, settlementUsecase)
	router := httpapi.NewRouter(handler)

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	zlog.Info("reward service listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, router); err != nil {
		zlog.Fatal("http server stopped", zap.Error(err))
	}
}
