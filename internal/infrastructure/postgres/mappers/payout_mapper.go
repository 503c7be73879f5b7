package mappers

import (
	"encoding/json"

	"github.com/vendaforte/cartela-reward-service/internal/domain"
	"github.com/vendaforte/cartela-reward-service/internal/infrastructure/postgres/models"
	"gorm.io/datatypes"
)

func ToDomainReport(model *models.PayoutReportModel) *domain.PayoutReport {
	var includedSales []string
	if len(model.IncludedSales) > 0 {
		// A malformed column leaves the audit list empty rather than
		// failing the read; settlement re-checks the sale flags anyway.
		_ = json.Unmarshal(model.IncludedSales, &includedSales)
	}

	return &domain.PayoutReport{
		ID:            model.ID,
		BatchNumber:   model.BatchNumber,
		AccountID:     model.AccountID,
		Kind:          model.Kind,
		Value:         model.Value,
		Status:        model.Status,
		IncludedSales: includedSales,
		CutoffDate:    model.CutoffDate,
		Notes:         model.Notes,
		CreatedBy:     model.CreatedBy,
		PaidAt:        model.PaidAt,
		CreatedAt:     model.CreatedAt,
	}
}

func ToGORMReport(report *domain.PayoutReport) *models.PayoutReportModel {
	includedSales, _ := json.Marshal(report.IncludedSales)

	return &models.PayoutReportModel{
		ID:            report.ID,
		BatchNumber:   report.BatchNumber,
		AccountID:     report.AccountID,
		Kind:          report.Kind,
		Value:         report.Value,
		Status:        report.Status,
		IncludedSales: datatypes.JSON(includedSales),
		CutoffDate:    report.CutoffDate,
		Notes:         report.Notes,
		CreatedBy:     report.CreatedBy,
		PaidAt:        report.PaidAt,
		CreatedAt:     report.CreatedAt,
	}
}
