package repository

import (
	"errors"
	"time"

	"github.com/vendaforte/cartela-reward-service/internal/domain"
	"github.com/vendaforte/cartela-reward-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultCampaignRepository struct {
	DB *gorm.DB
}

func NewDefaultCampaignRepository(db *gorm.DB) *DefaultCampaignRepository {
	return &DefaultCampaignRepository{DB: db}
}

func (r *DefaultCampaignRepository) WithTx(tx *gorm.DB) domain.CampaignRepository {
	return &DefaultCampaignRepository{DB: tx}
}

func (r *DefaultCampaignRepository) GetByID(campaignID string) (*domain.Campaign, error) {
	var model models.CampaignModel
	if err := r.DB.First(&model, "id = ?", campaignID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCampaignNotFound
		}
		return nil, err
	}

	return &domain.Campaign{
		ID:                model.ID,
		Name:              model.Name,
		ManagerPercentage: model.ManagerPercentage,
		Active:            model.Active,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
	}, nil
}

func (r *DefaultCampaignRepository) Create(campaign *domain.Campaign) error {
	return r.DB.Create(&models.CampaignModel{
		ID:                campaign.ID,
		Name:              campaign.Name,
		ManagerPercentage: campaign.ManagerPercentage,
		Active:            campaign.Active,
		CreatedAt:         campaign.CreatedAt,
		UpdatedAt:         campaign.UpdatedAt,
	}).Error
}

type DefaultSpecialEventRepository struct {
	DB *gorm.DB
}

func NewDefaultSpecialEventRepository(db *gorm.DB) *DefaultSpecialEventRepository {
	return &DefaultSpecialEventRepository{DB: db}
}

func (r *DefaultSpecialEventRepository) WithTx(tx *gorm.DB) domain.SpecialEventRepository {
	return &DefaultSpecialEventRepository{DB: tx}
}

func (r *DefaultSpecialEventRepository) Create(event *domain.SpecialEvent) error {
	return r.DB.Create(&models.SpecialEventModel{
		ID:         event.ID,
		CampaignID: event.CampaignID,
		Name:       event.Name,
		Multiplier: event.Multiplier,
		ActiveFrom: event.ActiveFrom,
		ActiveTo:   event.ActiveTo,
		Enabled:    event.Enabled,
	}).Error
}

func (r *DefaultSpecialEventRepository) FindActiveAt(campaignID string, ts time.Time) (*domain.SpecialEvent, error) {
	var model models.SpecialEventModel
	err := r.DB.
		Where("campaign_id = ? AND enabled = ? AND active_from <= ? AND active_to >= ?",
			campaignID, true, ts, ts).
		Order("active_from DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &domain.SpecialEvent{
		ID:         model.ID,
		CampaignID: model.CampaignID,
		Name:       model.Name,
		Multiplier: model.Multiplier,
		ActiveFrom: model.ActiveFrom,
		ActiveTo:   model.ActiveTo,
		Enabled:    model.Enabled,
	}, nil
}
