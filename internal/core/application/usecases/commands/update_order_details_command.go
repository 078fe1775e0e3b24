package commands

import (
	"errors"

	"orderdesk/internal/core/domain/model/identity"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/guard"
)

var ErrUpdateOrderDetailsCommandIsNotConstructed = errors.New(
	"UpdateOrderDetailsCommand must be created via NewUpdateOrderDetailsCommand constructor",
)

// DeveloperChange says what to do with the order's developer assignment.
type DeveloperChange int

const (
	KeepDeveloper DeveloperChange = iota
	AssignDeveloper
	UnassignDeveloper
)

// UpdateOrderDetailsCommand edits the customer-service owned fields of an order:
// its final price and its developer assignment.
type UpdateOrderDetailsCommand struct {
	actor           *identity.Actor
	orderID         kernel.ID
	finalPrice      *kernel.Money
	developerChange DeveloperChange
	developerID     kernel.ID

	guard guard.ConstructorGuard
}

// NewUpdateOrderDetailsCommand requires at least one change. developerID is only
// read when change is AssignDeveloper.
func NewUpdateOrderDetailsCommand(
	actor *identity.Actor,
	orderID kernel.ID,
	finalPrice *kernel.Money,
	change DeveloperChange,
	developerID kernel.ID,
) (UpdateOrderDetailsCommand, error) {
	cmd := UpdateOrderDetailsCommand{
		actor:           actor,
		orderID:         orderID,
		developerChange: change,
		guard:           guard.NewConstructorGuard(),
	}

	var changeErr error
	switch change {
	case AssignDeveloper:
		changeErr = developerID.Validate()
		cmd.developerID = developerID
	case KeepDeveloper, UnassignDeveloper:
	default:
		changeErr = errs.NewValueIsInvalidError("developer change is invalid")
	}

	var priceErr error
	if finalPrice != nil {
		priceErr = finalPrice.Validate()
		price := *finalPrice
		cmd.finalPrice = &price
	}

	if err := errors.Join(actor.Validate(), orderID.Validate(), changeErr, priceErr); err != nil {
		return UpdateOrderDetailsCommand{}, err
	}
	if finalPrice == nil && change == KeepDeveloper {
		return UpdateOrderDetailsCommand{}, errs.NewValueIsRequiredError("finalPrice or developer")
	}

	return cmd, nil
}

func (c UpdateOrderDetailsCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderDetailsCommandIsNotConstructed)
}

func (c UpdateOrderDetailsCommand) Actor() *identity.Actor {
	return c.actor
}

func (c UpdateOrderDetailsCommand) OrderID() kernel.ID {
	return c.orderID
}

func (c UpdateOrderDetailsCommand) FinalPrice() *kernel.Money {
	return c.finalPrice
}

func (c UpdateOrderDetailsCommand) DeveloperChange() DeveloperChange {
	return c.developerChange
}

func (c UpdateOrderDetailsCommand) DeveloperID() kernel.ID {
	return c.developerID
}
