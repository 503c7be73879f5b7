package mappers

import (
	"github.com/vendaforte/cartela-reward-service/internal/domain"
	"github.com/vendaforte/cartela-reward-service/internal/infrastructure/postgres/models"
)

func ToDomainAccount(model *models.UserAccountModel) *domain.UserAccount {
	return &domain.UserAccount{
		ID:               model.ID,
		Name:             model.Name,
		Role:             model.Role,
		ManagerID:        model.ManagerID,
		AvailableBalance: model.AvailableBalance,
		ReservedBalance:  model.ReservedBalance,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}
}

func ToGORMAccount(account *domain.UserAccount) *models.UserAccountModel {
	return &models.UserAccountModel{
		ID:               account.ID,
		Name:             account.Name,
		Role:             account.Role,
		ManagerID:        account.ManagerID,
		AvailableBalance: account.AvailableBalance,
		ReservedBalance:  account.ReservedBalance,
		CreatedAt:        account.CreatedAt,
		UpdatedAt:        account.UpdatedAt,
	}
}
