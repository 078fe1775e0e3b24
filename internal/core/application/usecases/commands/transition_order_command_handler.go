package commands

import (
	"context"
	"time"

	"orderdesk/internal/core/domain/model/identity"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/domain/model/user"
	"orderdesk/internal/core/domain/services"
	"orderdesk/internal/core/ports"
)

// TransitionOrderResult reports the status change performed by the handler.
type TransitionOrderResult struct {
	From order.Status
	To   order.Status
}

// TransitionOrderCommandHandler runs one lifecycle action end to end.
//
// Steps:
//  1. load the order
//  2. reject actions the lifecycle table does not list for the current status
//  3. authorize the actor with the order policy
//  4. apply the action
//  5. run side effects: finance is notified on SettleByTech; Verify snapshots
//     commissions and notifies creator and developer
//  6. persist and commit
//
// Any failure rolls the transaction back and leaves the order unchanged.
type TransitionOrderCommandHandler struct {
	uowFactory  OrderUoWFactory
	policy      services.OrderPolicy
	commissions services.CommissionCalculator
	clock       ports.Clock
}

// NewTransitionOrderCommandHandler creates a handler for lifecycle actions.
// Requires an OrderUoWFactory for transactions, the order policy for authorization,
// the commission calculator used on Verify and a clock for timestamps.
//
// Example:
//
//	handler := NewTransitionOrderCommandHandler(uowFactory, services.NewOrderPolicy(),
//	    services.NewCommissionCalculator(), ports.ClockFunc(time.Now))
//	cmd, _ := NewTransitionOrderCommand(actor, orderID, order.Verify)
//	result, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrIllegalTransition) {
//	    // the action does not apply to the current status
//	}
//	log.Printf("%s -> %s", result.From, result.To)
func NewTransitionOrderCommandHandler(
	uowFactory OrderUoWFactory,
	policy services.OrderPolicy,
	commissions services.CommissionCalculator,
	clock ports.Clock,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory:  uowFactory,
		policy:      policy,
		commissions: commissions,
		clock:       clock,
	}
}

// Handle applies the command's action and returns the status change.
//
// Returns:
//   - errs.ObjectNotFoundError when the order does not exist
//   - errs.IllegalTransitionError when the action is not allowed from the current status
//   - errs.PermissionDeniedError when the policy rejects the actor
func (h TransitionOrderCommandHandler) Handle(
	ctx context.Context,
	cmd TransitionOrderCommand,
) (TransitionOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return TransitionOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return TransitionOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return TransitionOrderResult{}, err
	}
	from := o.Status()

	if _, err = from.Apply(cmd.Action()); err != nil {
		return TransitionOrderResult{}, err
	}
	if err = h.policy.Authorize(cmd.Actor(), o, cmd.Action()); err != nil {
		return TransitionOrderResult{}, err
	}

	now := h.clock.Now()
	if err = o.Apply(cmd.Action(), now); err != nil {
		return TransitionOrderResult{}, err
	}

	switch cmd.Action() {
	case order.SettleByTech:
		err = h.notifyFinance(ctx, uow, o, now)
	case order.Verify:
		err = h.snapshotCommissions(ctx, uow, o, now)
	}
	if err != nil {
		return TransitionOrderResult{}, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return TransitionOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return TransitionOrderResult{}, err
	}

	return TransitionOrderResult{From: from, To: o.Status()}, nil
}

func (h TransitionOrderCommandHandler) notifyFinance(ctx context.Context, uow OrderUoW, o *order.Order, at time.Time) error {
	developerID, ok := o.DeveloperID()
	if !ok {
		return nil
	}
	developer, err := uow.UserRepository().Get(ctx, developerID)
	if err != nil {
		return err
	}

	financeUsers, err := uow.UserRepository().ListActiveByRole(ctx, identity.Finance)
	if err != nil {
		return err
	}

	content := readyForSettlementNotice(o, developer)
	for _, u := range financeUsers {
		if err = notify(ctx, uow.NotificationRepository(), u.ID(), content, o, at); err != nil {
			return err
		}
	}
	return nil
}

func (h TransitionOrderCommandHandler) snapshotCommissions(ctx context.Context, uow OrderUoW, o *order.Order, at time.Time) error {
	users := uow.UserRepository()

	creator, err := users.Get(ctx, o.CreatorID())
	if err != nil {
		return err
	}

	var developer *user.User
	if developerID, ok := o.DeveloperID(); ok {
		if developer, err = users.Get(ctx, developerID); err != nil {
			return err
		}
	}

	commissions, err := h.commissions.Calculate(o, creator, developer, at)
	if err != nil {
		return err
	}
	if err = o.ReplaceCommissions(commissions, at); err != nil {
		return err
	}

	content := commissionsCalculatedNotice(o)
	if err = notify(ctx, uow.NotificationRepository(), creator.ID(), content, o, at); err != nil {
		return err
	}
	if developer != nil {
		return notify(ctx, uow.NotificationRepository(), developer.ID(), content, o, at)
	}
	return nil
}
