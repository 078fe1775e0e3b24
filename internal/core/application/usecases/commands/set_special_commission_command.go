package commands

import (
	"errors"

	"orderdesk/internal/core/domain/model/identity"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/guard"
)

var ErrSetSpecialCommissionCommandIsNotConstructed = errors.New(
	"SetSpecialCommissionCommand must be created via NewSetSpecialCommissionCommand constructor",
)

// SetSpecialCommissionCommand overrides the commission rates of a single order.
// Rates left nil keep their current value.
type SetSpecialCommissionCommand struct {
	actor    *identity.Actor
	orderID  kernel.ID
	override order.CommissionOverride

	guard guard.ConstructorGuard
}

func NewSetSpecialCommissionCommand(
	actor *identity.Actor,
	orderID kernel.ID,
	csRate, techRate *kernel.Rate,
) (SetSpecialCommissionCommand, error) {
	var rateErrs []error
	for _, r := range []*kernel.Rate{csRate, techRate} {
		if r != nil {
			rateErrs = append(rateErrs, r.Validate())
		}
	}

	if err := errors.Join(append(rateErrs, actor.Validate(), orderID.Validate())...); err != nil {
		return SetSpecialCommissionCommand{}, err
	}
	if csRate == nil && techRate == nil {
		return SetSpecialCommissionCommand{}, errs.NewValueIsRequiredError("csRate or techRate")
	}

	return SetSpecialCommissionCommand{
		actor:    actor,
		orderID:  orderID,
		override: order.NewCommissionOverride(csRate, techRate),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c SetSpecialCommissionCommand) Validate() error {
	return c.guard.Validate(ErrSetSpecialCommissionCommandIsNotConstructed)
}

func (c SetSpecialCommissionCommand) Actor() *identity.Actor {
	return c.actor
}

func (c SetSpecialCommissionCommand) OrderID() kernel.ID {
	return c.orderID
}

func (c SetSpecialCommissionCommand) Override() order.CommissionOverride {
	return c.override
}
