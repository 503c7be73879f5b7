package models

import "time"

type NotificationModel struct {
	ID        string `gorm:"primaryKey"`
	UserID    string `gorm:"type:uuid;not null;index:idx_notification_user"`
	Message   string `gorm:"not null"`
	Read      bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
}

func (NotificationModel) TableName() string {
	return "notifications"
}
