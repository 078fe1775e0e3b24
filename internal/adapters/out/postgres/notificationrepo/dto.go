// Package notificationrepo persists in-app notifications.
package notificationrepo

import (
	"errors"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/notification"
)

type NotificationDTO struct {
	ID             int64     `gorm:"primaryKey;autoIncrement"`
	RecipientID    int64     `gorm:"not null;index:idx_notifications_recipient"`
	Content        string    `gorm:"type:text;not null"`
	IsRead         bool      `gorm:"not null;default:false"`
	RelatedOrderID *int64    `gorm:"index"`
	CreatedAt      time.Time `gorm:"not null;index:idx_notifications_recipient"`
}

func (NotificationDTO) TableName() string {
	return "notifications"
}

func fromDomain(n *notification.Notification) NotificationDTO {
	dto := NotificationDTO{
		ID:          n.ID().Int64(),
		RecipientID: n.RecipientID().Int64(),
		Content:     n.Content(),
		IsRead:      n.IsRead(),
		CreatedAt:   n.CreatedAt(),
	}
	if orderID, ok := n.RelatedOrderID(); ok {
		raw := orderID.Int64()
		dto.RelatedOrderID = &raw
	}
	return dto
}

func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, idErr := kernel.NewID(dto.ID)
	recipientID, recipientErr := kernel.NewID(dto.RecipientID)
	if err := errors.Join(idErr, recipientErr); err != nil {
		return nil, err
	}

	var related *kernel.ID
	if dto.RelatedOrderID != nil {
		orderID, err := kernel.NewID(*dto.RelatedOrderID)
		if err != nil {
			return nil, err
		}
		related = &orderID
	}

	return notification.RestoreNotification(id, recipientID, dto.Content, dto.IsRead, related, dto.CreatedAt)
}
