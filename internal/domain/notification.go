package domain

import (
	"time"

	"gorm.io/gorm"
)

type Notification struct {
	ID        string
	UserID    string
	Message   string
	Read      bool
	CreatedAt time.Time
}

// NotificationRepository is a best-effort audit sink: a failed write is
// logged by the caller and never aborts the enclosing operation.
type NotificationRepository interface {
	WithTx(tx *gorm.DB) NotificationRepository
	Create(notification *Notification) error
	FindByUserID(userID string) ([]*Notification, error)
}
