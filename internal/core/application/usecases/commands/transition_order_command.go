package commands

import (
	"errors"

	"orderdesk/internal/core/domain/model/identity"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand asks to perform a lifecycle action on an order.
type TransitionOrderCommand struct {
	actor   *identity.Actor
	orderID kernel.ID
	action  order.Action

	guard guard.ConstructorGuard
}

func NewTransitionOrderCommand(
	actor *identity.Actor,
	orderID kernel.ID,
	action order.Action,
) (TransitionOrderCommand, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate(), action.Validate()); err != nil {
		return TransitionOrderCommand{}, err
	}
	return TransitionOrderCommand{
		actor:   actor,
		orderID: orderID,
		action:  action,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

func (c TransitionOrderCommand) Actor() *identity.Actor {
	return c.actor
}

func (c TransitionOrderCommand) OrderID() kernel.ID {
	return c.orderID
}

func (c TransitionOrderCommand) Action() order.Action {
	return c.action
}
