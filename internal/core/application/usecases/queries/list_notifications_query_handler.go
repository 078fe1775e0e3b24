package queries

import (
	"context"
	"database/sql"

	"orderdesk/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

type ListNotificationsQueryHandler struct {
	db *gorm.DB
}

func NewListNotificationsQueryHandler(db *gorm.DB) ListNotificationsQueryHandler {
	return ListNotificationsQueryHandler{db: db}
}

// Handle returns the notifications newest first.
func (h ListNotificationsQueryHandler) Handle(
	ctx context.Context,
	query ListNotificationsQuery,
) ([]NotificationView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	notifications := make([]NotificationView, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, content, is_read, related_order_id, created_at
		FROM notifications
		WHERE recipient_id = ?
		ORDER BY created_at DESC, id DESC
	`, query.Actor().ID().Int64()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			view    NotificationView
			id      int64
			related sql.NullInt64
		)
		if err = rows.Scan(&id, &view.Content, &view.IsRead, &related, &view.CreatedAt); err != nil {
			return nil, err
		}
		if view.ID, err = kernel.NewID(id); err != nil {
			return nil, err
		}
		if related.Valid {
			orderID, idErr := kernel.NewID(related.Int64)
			if idErr != nil {
				return nil, idErr
			}
			view.RelatedOrderID = &orderID
		}
		notifications = append(notifications, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}
