package repository

import (
	"errors"
	"time"

	"github.com/vendaforte/cartela-reward-service/internal/domain"
	"github.com/vendaforte/cartela-reward-service/internal/infrastructure/postgres/mappers"
	"github.com/vendaforte/cartela-reward-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultPayoutRepository struct {
	DB *gorm.DB
}

func NewDefaultPayoutRepository(db *gorm.DB) *DefaultPayoutRepository {
	return &DefaultPayoutRepository{DB: db}
}

func (r *DefaultPayoutRepository) WithTx(tx *gorm.DB) domain.PayoutRepository {
	return &DefaultPayoutRepository{DB: tx}
}

func (r *DefaultPayoutRepository) Create(report *domain.PayoutReport) error {
	return r.DB.Create(mappers.ToGORMReport(report)).Error
}

func (r *DefaultPayoutRepository) FindByBatchNumber(batchNumber string) ([]*domain.PayoutReport, error) {
	var reportModels []models.PayoutReportModel
	err := r.DB.
		Where("batch_number = ?", batchNumber).
		Order("created_at ASC").
		Find(&reportModels).Error
	if err != nil {
		return nil, err
	}

	reports := make([]*domain.PayoutReport, len(reportModels))
	for i, model := range reportModels {
		reports[i] = mappers.ToDomainReport(&model)
	}
	return reports, nil
}

func (r *DefaultPayoutRepository) HasPendingForAccount(accountID string) (bool, error) {
	var count int64
	err := r.DB.Model(&models.PayoutReportModel{}).
		Where("account_id = ? AND status = ?", accountID, domain.ReportPending).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *DefaultPayoutRepository) MaxBatchNumberWithPrefix(prefix string) (string, error) {
	var model models.PayoutReportModel
	// Longest suffix first, then lexicographic: keeps the ordering
	// numeric once a month overflows the zero-padded 3-digit space.
	err := r.DB.
		Where("batch_number LIKE ?", prefix+"%").
		Order("LENGTH(batch_number) DESC, batch_number DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return model.BatchNumber, nil
}

func (r *DefaultPayoutRepository) MarkPaid(reportID string, paidAt time.Time, notes string) error {
	updates := map[string]interface{}{
		"status":  domain.ReportPaid,
		"paid_at": paidAt,
	}
	if notes != "" {
		updates["notes"] = notes
	}
	return r.DB.Model(&models.PayoutReportModel{}).
		Where("id = ?", reportID).
		Updates(updates).Error
}

func (r *DefaultPayoutRepository) DeleteByBatchNumber(batchNumber string) error {
	return r.DB.
		Where("batch_number = ?", batchNumber).
		Delete(&models.PayoutReportModel{}).Error
}
