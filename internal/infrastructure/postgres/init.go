package postgres

import (
	"log"

	"github.com/vendaforte/cartela-reward-service/internal/config"
	"github.com/vendaforte/cartela-reward-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.RewardConfig) *gorm.DB {
	dsn := cfg.LedgerDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(
		&models.UserAccountModel{},
		&models.CampaignModel{},
		&models.SpecialEventModel{},
		&models.CardTierRuleModel{},
		&models.RequirementModel{},
		&models.ConditionModel{},
		&models.SaleSubmissionModel{},
		&models.CompletedCardTierModel{},
		&models.PayoutReportModel{},
		&models.NotificationModel{},
	)

	return db
}
