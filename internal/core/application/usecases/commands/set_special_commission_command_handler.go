package commands

import (
	"context"

	"orderdesk/internal/core/domain/services"
	"orderdesk/internal/core/ports"
)

// SetSpecialCommissionCommandHandler lets a super admin override commission rates.
// The permission ignores status and lock; the order itself refuses changes once it
// is settled or cancelled.
type SetSpecialCommissionCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.OrderPolicy
	clock      ports.Clock
}

func NewSetSpecialCommissionCommandHandler(
	uowFactory OrderUoWFactory,
	policy services.OrderPolicy,
	clock ports.Clock,
) SetSpecialCommissionCommandHandler {
	return SetSpecialCommissionCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		clock:      clock,
	}
}

// Handle stores both rates; a nil rate clears that side of the override.
func (h SetSpecialCommissionCommandHandler) Handle(ctx context.Context, cmd SetSpecialCommissionCommand) error {
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

	if err = h.policy.AuthorizeOperation(cmd.Actor(), o, services.OperationSetSpecialCommission); err != nil {
		return err
	}

	if err = o.SetSpecialCommission(cmd.Override(), h.clock.Now()); err != nil {
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
