package repository

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vendaforte/cartela-reward-service/internal/domain"
	"github.com/vendaforte/cartela-reward-service/internal/infrastructure/postgres/mappers"
	"github.com/vendaforte/cartela-reward-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultSaleRepository struct {
	DB *gorm.DB
}

func NewDefaultSaleRepository(db *gorm.DB) *DefaultSaleRepository {
	return &DefaultSaleRepository{DB: db}
}

func (r *DefaultSaleRepository) WithTx(tx *gorm.DB) domain.SaleRepository {
	return &DefaultSaleRepository{DB: tx}
}

func (r *DefaultSaleRepository) GetByID(saleID string) (*domain.SaleSubmission, error) {
	var model models.SaleSubmissionModel
	if err := r.DB.First(&model, "id = ?", saleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSaleNotFound
		}
		return nil, err
	}
	return mappers.ToDomainSale(&model), nil
}

func (r *DefaultSaleRepository) Create(sale *domain.SaleSubmission) error {
	return r.DB.Create(mappers.ToGORMSale(sale)).Error
}

func (r *DefaultSaleRepository) MarkValidated(saleID string, tierNumber int, validatedAt time.Time) error {
	return r.DB.Model(&models.SaleSubmissionModel{}).
		Where("id = ?", saleID).
		Updates(map[string]interface{}{
			"status":             domain.SaleValidated,
			"card_tier_attained": tierNumber,
			"validated_at":       validatedAt,
			"updated_at":         time.Now(),
		}).Error
}

func (r *DefaultSaleRepository) CountValidatedByOrdinal(vendorID, campaignID string, tierNumber int) (*domain.OrdinalCounts, error) {
	var rows []struct {
		Ordinal *int
		Total   int64
	}
	err := r.DB.Model(&models.SaleSubmissionModel{}).
		Select("requirements.ordinal AS ordinal, COUNT(*) AS total").
		Joins("LEFT JOIN requirements ON requirements.id = sale_submissions.requirement_id").
		Where("sale_submissions.vendor_id = ? AND sale_submissions.campaign_id = ? AND sale_submissions.card_tier_attained = ? AND sale_submissions.status = ?",
			vendorID, campaignID, tierNumber, domain.SaleValidated).
		Group("requirements.ordinal").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := &domain.OrdinalCounts{Counts: make(map[int]int64, len(rows))}
	for _, row := range rows {
		if row.Ordinal == nil {
			counts.Unresolved += row.Total
			continue
		}
		counts.Counts[*row.Ordinal] += row.Total
	}
	return counts, nil
}

func (r *DefaultSaleRepository) FindUncredited(vendorID, campaignID string, tierNumber int) ([]*domain.SaleSubmission, error) {
	var saleModels []models.SaleSubmissionModel
	err := r.DB.
		Where("vendor_id = ? AND campaign_id = ? AND card_tier_attained = ? AND status = ? AND reward_added_to_balance = ?",
			vendorID, campaignID, tierNumber, domain.SaleValidated, false).
		Order("submitted_at ASC").
		Find(&saleModels).Error
	if err != nil {
		return nil, err
	}

	sales := make([]*domain.SaleSubmission, len(saleModels))
	for i, model := range saleModels {
		sales[i] = mappers.ToDomainSale(&model)
	}
	return sales, nil
}

func (r *DefaultSaleRepository) ApplyReward(saleID string, multiplier, finalValue decimal.Decimal) error {
	return r.DB.Model(&models.SaleSubmissionModel{}).
		Where("id = ?", saleID).
		Updates(map[string]interface{}{
			"applied_multiplier":      multiplier,
			"final_value_with_event":  finalValue,
			"reward_added_to_balance": true,
			"updated_at":              time.Now(),
		}).Error
}

// FindUnsettledByVendorIDs is the single bulk query behind batch
// generation; callers pass hundreds of vendor ids at once instead of
// querying per account.
func (r *DefaultSaleRepository) FindUnsettledByVendorIDs(vendorIDs []string) ([]*domain.SaleSubmission, error) {
	if len(vendorIDs) == 0 {
		return nil, nil
	}

	var saleModels []models.SaleSubmissionModel
	err := r.DB.
		Where("vendor_id IN ? AND reward_added_to_balance = ? AND reward_settled = ?",
			vendorIDs, true, false).
		Find(&saleModels).Error
	if err != nil {
		return nil, err
	}

	sales := make([]*domain.SaleSubmission, len(saleModels))
	for i, model := range saleModels {
		sales[i] = mappers.ToDomainSale(&model)
	}
	return sales, nil
}

func (r *DefaultSaleRepository) MarkSettled(saleIDs []string) error {
	if len(saleIDs) == 0 {
		return nil
	}
	return r.DB.Model(&models.SaleSubmissionModel{}).
		Where("id IN ?", saleIDs).
		Updates(map[string]interface{}{
			"reward_settled": true,
			"updated_at":     time.Now(),
		}).Error
}
