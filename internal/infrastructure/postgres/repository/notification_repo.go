package repository

import (
	"time"

	"github.com/jaevor/go-nanoid"
	"github.com/vendaforte/cartela-reward-service/internal/domain"
	"github.com/vendaforte/cartela-reward-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultNotificationRepository struct {
	DB *gorm.DB
}

func NewDefaultNotificationRepository(db *gorm.DB) *DefaultNotificationRepository {
	return &DefaultNotificationRepository{DB: db}
}

func (r *DefaultNotificationRepository) WithTx(tx *gorm.DB) domain.NotificationRepository {
	return &DefaultNotificationRepository{DB: tx}
}

func (r *DefaultNotificationRepository) Create(notification *domain.Notification) error {
	if notification.ID == "" {
		idGenerator, err := nanoid.Standard(15)
		if err != nil {
			return err
		}
		notification.ID = idGenerator()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}

	return r.DB.Create(&models.NotificationModel{
		ID:        notification.ID,
		UserID:    notification.UserID,
		Message:   notification.Message,
		Read:      notification.Read,
		CreatedAt: notification.CreatedAt,
	}).Error
}

func (r *DefaultNotificationRepository) FindByUserID(userID string) ([]*domain.Notification, error) {
	var notificationModels []models.NotificationModel
	err := r.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notificationModels).Error
	if err != nil {
		return nil, err
	}

	notifications := make([]*domain.Notification, len(notificationModels))
	for i, model := range notificationModels {
		notifications[i] = &domain.Notification{
			ID:        model.ID,
			UserID:    model.UserID,
			Message:   model.Message,
			Read:      model.Read,
			CreatedAt: model.CreatedAt,
		}
	}
	return notifications, nil
}
