package testutil

import (
	"fmt"
	"testing"

	"github.com/vendaforte/cartela-reward-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens an in-memory SQLite database migrated with the full
// ledger schema. TranslateError stays on so unique-constraint violations
// surface as gorm.ErrDuplicatedKey, same as against Postgres.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
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
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB from gorm: %v", err)
	}

	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}
