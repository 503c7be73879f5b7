package settlementdto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PreviewRow is one account's would-be payout, computed without writing
// anything.
type PreviewRow struct {
	AccountID        string          `json:"account_id"`
	AccountName      string          `json:"account_name"`
	Kind             string          `json:"kind"`
	AvailableBalance decimal.Decimal `json:"available_balance"`
	ReservedBalance  decimal.Decimal `json:"reserved_balance"`
}

type PreviewOutput struct {
	Rows           []PreviewRow    `json:"rows"`
	TotalAvailable decimal.Decimal `json:"total_available"`
	TotalReserved  decimal.Decimal `json:"total_reserved"`
	Accounts       int             `json:"accounts"`
}

// SkippedRow records an account the generation phase left out of the batch.
type SkippedRow struct {
	AccountID string          `json:"account_id"`
	Value     decimal.Decimal `json:"value"`
	Reason    string          `json:"reason"`
}

// ReportSummary is the per-report slice of a generate/process/get response.
type ReportSummary struct {
	ReportID  string          `json:"report_id"`
	AccountID string          `json:"account_id"`
	Kind      string          `json:"kind"`
	Value     decimal.Decimal `json:"value"`
	Status    string          `json:"status"`
	SaleCount int             `json:"sale_count"`
	PaidAt    *time.Time      `json:"paid_at,omitempty"`
}

type GenerateOutput struct {
	BatchNumber string          `json:"batch_number"`
	CutoffDate  time.Time       `json:"cutoff_date"`
	Reports     []ReportSummary `json:"reports"`
	TotalValue  decimal.Decimal `json:"total_value"`
	SkippedRows []SkippedRow    `json:"skipped_rows,omitempty"`
}

type ProcessOutput struct {
	BatchNumber    string          `json:"batch_number"`
	ReportsPaid    int             `json:"reports_paid"`
	ReportsSkipped int             `json:"reports_skipped"`
	SalesSettled   int             `json:"sales_settled"`
	TotalValue     decimal.Decimal `json:"total_value"`
	AlreadySettled bool            `json:"already_settled"`
}

type CancelOutput struct {
	BatchNumber     string          `json:"batch_number"`
	ReportsReleased int             `json:"reports_released"`
	TotalReleased   decimal.Decimal `json:"total_released"`
}

type BatchOutput struct {
	BatchNumber string          `json:"batch_number"`
	Reports     []ReportSummary `json:"reports"`
	TotalValue  decimal.Decimal `json:"total_value"`
}
