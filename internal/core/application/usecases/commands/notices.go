package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/notification"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/domain/model/user"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/errs"
)

func assignedNotice(o *order.Order) string {
	return fmt.Sprintf("Order [%s] has been assigned to you, please follow up.", o.Reference())
}

func readyForSettlementNotice(o *order.Order, developer *user.User) string {
	name := developer.FullName()
	if name == "" {
		name = developer.Username()
	}
	return fmt.Sprintf("Order [%s] was marked ready for settlement by %s, please review.", o.Reference(), name)
}

func commissionsCalculatedNotice(o *order.Order) string {
	return fmt.Sprintf("Commissions for order [%s] have been calculated.", o.Reference())
}

func notify(
	ctx context.Context,
	repo ports.NotificationRepository,
	recipientID kernel.ID,
	content string,
	o *order.Order,
	at time.Time,
) error {
	orderID := o.ID()
	n, err := notification.NewNotification(recipientID, content, &orderID, at)
	if err != nil {
		return err
	}
	return repo.Add(ctx, n)
}

// loadActiveDeveloper fetches developerID and checks it may be assigned to orders.
func loadActiveDeveloper(ctx context.Context, repo ports.UserRepository, developerID kernel.ID) (*user.User, error) {
	developer, err := repo.Get(ctx, developerID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, errs.NewValueIsInvalidErrorWithCause("developer is invalid", err)
	}
	if err != nil {
		return nil, err
	}
	if !developer.IsActiveDeveloper() {
		return nil, errs.NewValueIsInvalidError("user " + developerID.String() + " is not an active developer")
	}
	return developer, nil
}
