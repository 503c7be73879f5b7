package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/vendaforte/cartela-reward-service/internal/domain"
)

type UserAccountModel struct {
	ID               string             `gorm:"primaryKey;type:uuid"`
	Name             string             `gorm:"not null"`
	Role             domain.AccountRole `gorm:"not null;index:idx_account_role"`
	ManagerID        *string            `gorm:"type:uuid;index:idx_account_manager"`
	AvailableBalance decimal.Decimal    `gorm:"type:decimal(18,2);not null;default:0"`
	ReservedBalance  decimal.Decimal    `gorm:"type:decimal(18,2);not null;default:0"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (UserAccountModel) TableName() string {
	return "user_accounts"
}
