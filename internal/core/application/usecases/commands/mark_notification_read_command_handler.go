package commands

import (
	"context"

	"orderdesk/internal/core/domain/model/notification"
	"orderdesk/internal/pkg/errs"
)

// MarkNotificationReadCommandHandler marks a notification as read for its recipient.
//
// Returns:
//   - the updated notification; an already read one is returned unchanged
//   - errs.ObjectNotFoundError when the id is unknown
//   - errs.PermissionDeniedError when the actor is not the recipient
type MarkNotificationReadCommandHandler struct {
	uowFactory NotificationUoWFactory
}

func NewMarkNotificationReadCommandHandler(uowFactory NotificationUoWFactory) MarkNotificationReadCommandHandler {
	return MarkNotificationReadCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h MarkNotificationReadCommandHandler) Handle(
	ctx context.Context,
	cmd MarkNotificationReadCommand,
) (*notification.Notification, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.NotificationRepository()
	n, err := repo.Get(ctx, cmd.NotificationID())
	if err != nil {
		return nil, err
	}

	if !n.IsAddressedTo(cmd.Actor().ID()) {
		return nil, errs.NewPermissionDeniedError("MARK_NOTIFICATION_READ", "not the recipient")
	}

	if !n.IsRead() {
		n.MarkRead()
		if err = repo.Update(ctx, n); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return n, nil
}
