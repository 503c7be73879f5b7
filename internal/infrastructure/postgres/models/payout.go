package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/vendaforte/cartela-reward-service/internal/domain"
	"gorm.io/datatypes"
)

type PayoutReportModel struct {
	ID            string              `gorm:"primaryKey;type:uuid"`
	BatchNumber   string              `gorm:"not null;index:idx_report_batch"`
	AccountID     string              `gorm:"type:uuid;not null;index:idx_report_account"`
	Kind          domain.ReportKind   `gorm:"not null"`
	Value         decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	Status        domain.ReportStatus `gorm:"not null;index:idx_report_status"`
	IncludedSales datatypes.JSON
	CutoffDate    time.Time           `gorm:"not null"`
	Notes         string
	CreatedBy     string              `gorm:"not null"`
	PaidAt        *time.Time
	CreatedAt     time.Time
}

func (PayoutReportModel) TableName() string {
	return "payout_reports"
}
