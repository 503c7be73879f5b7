package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AccountRole string

const (
	RoleVendor  AccountRole = "VENDOR"
	RoleManager AccountRole = "MANAGER"
	RoleAdmin   AccountRole = "ADMIN"
)

type UserAccount struct {
	ID               string
	Name             string
	Role             AccountRole
	ManagerID        *string
	AvailableBalance decimal.Decimal
	ReservedBalance  decimal.Decimal
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type AccountRepository interface {
	WithTx(tx *gorm.DB) AccountRepository
	GetByID(accountID string) (*UserAccount, error)
	Create(account *UserAccount) error
	// FindWithPositiveAvailable returns every account holding spendable funds.
	FindWithPositiveAvailable() ([]*UserAccount, error)
	// FindSubordinateIDs returns the vendor ids reporting to the given managers.
	FindSubordinateIDs(managerIDs []string) (map[string][]string, error)
	// AddAvailable adjusts available_balance by delta in SQL, never in memory.
	AddAvailable(accountID string, delta decimal.Decimal) error
	// MoveAvailableToReserved shifts amount out of the spendable balance in
	// a single statement so concurrent generators cannot double-reserve.
	MoveAvailableToReserved(accountID string, amount decimal.Decimal) error
	// MoveReservedToAvailable reverses a reservation.
	MoveReservedToAvailable(accountID string, amount decimal.Decimal) error
	// SubReserved debits reserved_balance on settlement.
	SubReserved(accountID string, amount decimal.Decimal) error
}
