package commands

import (
	"context"

	"orderdesk/internal/core/domain/services"
	"orderdesk/internal/core/ports"
)

// AddWorkLogCommandHandler records work logs written by the assigned developer on
// unlocked orders.
//
// Example:
//
//	cmd, err := NewAddWorkLogCommand(dev, orderID, "wired the checkout page")
//	if err != nil {
//	    return err // blank content
//	}
//	if err = handler.Handle(ctx, cmd); errors.Is(err, errs.ErrPermissionDenied) {
//	    // not the assigned developer, or the order is locked
//	}
type AddWorkLogCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.OrderPolicy
	clock      ports.Clock
}

func NewAddWorkLogCommandHandler(
	uowFactory OrderUoWFactory,
	policy services.OrderPolicy,
	clock ports.Clock,
) AddWorkLogCommandHandler {
	return AddWorkLogCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		clock:      clock,
	}
}

func (h AddWorkLogCommandHandler) Handle(ctx context.Context, cmd AddWorkLogCommand) error {
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

	if err = h.policy.AuthorizeOperation(cmd.Actor(), o, services.OperationAddWorkLog); err != nil {
		return err
	}

	if _, err = o.AddWorkLog(cmd.Actor().ID(), cmd.Content(), h.clock.Now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
