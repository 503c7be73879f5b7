package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vendaforte/cartela-reward-service/internal/domain"
	"github.com/vendaforte/cartela-reward-service/internal/infrastructure/postgres/mappers"
	"github.com/vendaforte/cartela-reward-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultAccountRepository struct {
	DB *gorm.DB
}

func NewDefaultAccountRepository(db *gorm.DB) *DefaultAccountRepository {
	return &DefaultAccountRepository{DB: db}
}

func (r *DefaultAccountRepository) WithTx(tx *gorm.DB) domain.AccountRepository {
	return &DefaultAccountRepository{DB: tx}
}

func (r *DefaultAccountRepository) GetByID(accountID string) (*domain.UserAccount, error) {
	var model models.UserAccountModel
	if err := r.DB.First(&model, "id = ?", accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return mappers.ToDomainAccount(&model), nil
}

func (r *DefaultAccountRepository) Create(account *domain.UserAccount) error {
	model := mappers.ToGORMAccount(account)
	return r.DB.Create(model).Error
}

func (r *DefaultAccountRepository) FindWithPositiveAvailable() ([]*domain.UserAccount, error) {
	var accountModels []models.UserAccountModel
	if err := r.DB.
		Where("available_balance > 0").
		Order("name ASC").
		Find(&accountModels).Error; err != nil {
		return nil, err
	}

	accounts := make([]*domain.UserAccount, len(accountModels))
	for i, model := range accountModels {
		accounts[i] = mappers.ToDomainAccount(&model)
	}
	return accounts, nil
}

func (r *DefaultAccountRepository) FindSubordinateIDs(managerIDs []string) (map[string][]string, error) {
	if len(managerIDs) == 0 {
		return map[string][]string{}, nil
	}

	var rows []struct {
		ID        string
		ManagerID string
	}
	if err := r.DB.Model(&models.UserAccountModel{}).
		Select("id", "manager_id").
		Where("manager_id IN ?", managerIDs).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	subordinates := make(map[string][]string, len(managerIDs))
	for _, row := range rows {
		subordinates[row.ManagerID] = append(subordinates[row.ManagerID], row.ID)
	}
	return subordinates, nil
}

func (r *DefaultAccountRepository) AddAvailable(accountID string, delta decimal.Decimal) error {
	return r.applyBalanceUpdate(accountID, map[string]interface{}{
		"available_balance": gorm.Expr("available_balance + ?", delta),
		"updated_at":        time.Now(),
	})
}

func (r *DefaultAccountRepository) MoveAvailableToReserved(accountID string, amount decimal.Decimal) error {
	return r.applyBalanceUpdate(accountID, map[string]interface{}{
		"available_balance": gorm.Expr("available_balance - ?", amount),
		"reserved_balance":  gorm.Expr("reserved_balance + ?", amount),
		"updated_at":        time.Now(),
	})
}

func (r *DefaultAccountRepository) MoveReservedToAvailable(accountID string, amount decimal.Decimal) error {
	return r.applyBalanceUpdate(accountID, map[string]interface{}{
		"available_balance": gorm.Expr("available_balance + ?", amount),
		"reserved_balance":  gorm.Expr("reserved_balance - ?", amount),
		"updated_at":        time.Now(),
	})
}

func (r *DefaultAccountRepository) SubReserved(accountID string, amount decimal.Decimal) error {
	return r.applyBalanceUpdate(accountID, map[string]interface{}{
		"reserved_balance": gorm.Expr("reserved_balance - ?", amount),
		"updated_at":       time.Now(),
	})
}

func (r *DefaultAccountRepository) applyBalanceUpdate(accountID string, updates map[string]interface{}) error {
	result := r.DB.Model(&models.UserAccountModel{}).
		Where("id = ?", accountID).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update balance for account %s: %w", accountID, result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}
