package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ReportKind string

const (
	ReportKindVendor  ReportKind = "VENDOR"
	ReportKindManager ReportKind = "MANAGER"
)

type ReportStatus string

const (
	ReportPending ReportStatus = "PENDING"
	ReportPaid    ReportStatus = "PAID"
)

// PayoutReport is one account's slice of a payment batch. Value snapshots
// the available balance at generation time; the same amount sits in the
// account's reserved balance until the report is paid or the batch is
// cancelled. A manager report lists subordinate sales for audit only:
// settlement never marks those sales liquidated through it.
type PayoutReport struct {
	ID            string
	BatchNumber   string
	AccountID     string
	Kind          ReportKind
	Value         decimal.Decimal
	Status        ReportStatus
	IncludedSales []string
	CutoffDate    time.Time
	Notes         string
	CreatedBy     string
	PaidAt        *time.Time
	CreatedAt     time.Time
}

type PayoutRepository interface {
	WithTx(tx *gorm.DB) PayoutRepository
	Create(report *PayoutReport) error
	FindByBatchNumber(batchNumber string) ([]*PayoutReport, error)
	// HasPendingForAccount reports whether the account already has an open
	// report, which blocks a second reservation.
	HasPendingForAccount(accountID string) (bool, error)
	// MaxBatchNumberWithPrefix returns the highest existing batch number
	// starting with prefix, or "" when the month has no batches yet.
	MaxBatchNumberWithPrefix(prefix string) (string, error)
	MarkPaid(reportID string, paidAt time.Time, notes string) error
	DeleteByBatchNumber(batchNumber string) error
}
