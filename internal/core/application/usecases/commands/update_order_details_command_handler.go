package commands

import (
	"context"

	"orderdesk/internal/core/domain/services"
	"orderdesk/internal/core/ports"
)

// UpdateOrderDetailsCommandHandler applies price and assignment edits made by
// customer service. A newly assigned developer is notified; re-assigning the same
// developer is a no-op.
type UpdateOrderDetailsCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.OrderPolicy
	clock      ports.Clock
}

func NewUpdateOrderDetailsCommandHandler(
	uowFactory OrderUoWFactory,
	policy services.OrderPolicy,
	clock ports.Clock,
) UpdateOrderDetailsCommandHandler {
	return UpdateOrderDetailsCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		clock:      clock,
	}
}

func (h UpdateOrderDetailsCommandHandler) Handle(ctx context.Context, cmd UpdateOrderDetailsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = h.policy.AuthorizeOperation(cmd.Actor(), o, services.OperationUpdateDetails); err != nil {
		return err
	}

	now := h.clock.Now()
	if price := cmd.FinalPrice(); price != nil {
		if err = o.SetFinalPrice(*price, now); err != nil {
			return err
		}
	}

	notifyDeveloper := false
	switch cmd.DeveloperChange() {
	case AssignDeveloper:
		if !o.IsAssignedTo(cmd.DeveloperID()) {
			if _, err = loadActiveDeveloper(ctx, uow.UserRepository(), cmd.DeveloperID()); err != nil {
				return err
			}
			if err = o.AssignDeveloper(cmd.DeveloperID(), now); err != nil {
				return err
			}
			notifyDeveloper = true
		}
	case UnassignDeveloper:
		if err = o.UnassignDeveloper(now); err != nil {
			return err
		}
	case KeepDeveloper:
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if notifyDeveloper {
		if err = notify(ctx, uow.NotificationRepository(), cmd.DeveloperID(), assignedNotice(o), o, now); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
