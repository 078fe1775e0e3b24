package commands

import (
	"context"

	"orderdesk/internal/core/domain/model/identity"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/errs"
)

// CreateOrderCommandHandler creates orders in PendingAssignment. Only customer-service
// users record orders; an optional developer is assigned and notified in the same
// transaction.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      ports.Clock
}

// NewCreateOrderCommandHandler creates a handler for new orders. Requires an
// OrderUoWFactory so the order and the developer notification commit together.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, clock ports.Clock) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle returns the identity of the new order.
//
// Returns:
//   - errs.PermissionDeniedError when the actor is not customer service
//   - errs.ValueIsInvalidError when the chosen developer is unknown or not an
//     active developer
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (kernel.ID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.ID{}, err
	}
	if cmd.Actor().Role() != identity.CustomerService {
		return kernel.ID{}, errs.NewPermissionDeniedError("CREATE_ORDER", "only customer service records orders")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.ID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := h.clock.Now()
	o, err := order.NewOrder(cmd.Actor().ID(), cmd.CustomerInfo(), cmd.Requirements(), cmd.InitialBudget(), now)
	if err != nil {
		return kernel.ID{}, err
	}

	if developerID := cmd.DeveloperID(); developerID != nil {
		if _, err = loadActiveDeveloper(ctx, uow.UserRepository(), *developerID); err != nil {
			return kernel.ID{}, err
		}
		if err = o.AssignDeveloper(*developerID, now); err != nil {
			return kernel.ID{}, err
		}
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return kernel.ID{}, err
	}

	if developerID, ok := o.DeveloperID(); ok {
		if err = notify(ctx, uow.NotificationRepository(), developerID, assignedNotice(o), o, now); err != nil {
			return kernel.ID{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.ID{}, err
	}

	return o.ID(), nil
}
