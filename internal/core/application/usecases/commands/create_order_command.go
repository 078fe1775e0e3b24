package commands

import (
	"errors"
	"strings"

	"orderdesk/internal/core/domain/model/identity"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand records a new customer order on behalf of a customer-service user.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(actor, "ACME, +1 555 0100", "landing page", nil, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	orderID, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	actor         *identity.Actor
	customerInfo  string
	requirements  string
	initialBudget *kernel.Money
	developerID   *kernel.ID

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the order data. initialBudget and developerID are optional.
func NewCreateOrderCommand(
	actor *identity.Actor,
	customerInfo, requirements string,
	initialBudget *kernel.Money,
	developerID *kernel.ID,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		requirements:  requirements,
		initialBudget: initialBudget,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setCustomerInfo(customerInfo),
		cmd.setDeveloperID(developerID),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Actor() *identity.Actor {
	return c.actor
}

func (c CreateOrderCommand) CustomerInfo() string {
	return c.customerInfo
}

func (c CreateOrderCommand) Requirements() string {
	return c.requirements
}

func (c CreateOrderCommand) InitialBudget() *kernel.Money {
	return c.initialBudget
}

// DeveloperID is the developer to assign right away, or nil.
func (c CreateOrderCommand) DeveloperID() *kernel.ID {
	return c.developerID
}

func (c *CreateOrderCommand) setActor(actor *identity.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *CreateOrderCommand) setCustomerInfo(customerInfo string) error {
	if strings.TrimSpace(customerInfo) == "" {
		return errs.NewValueIsRequiredError("customerInfo")
	}
	c.customerInfo = customerInfo
	return nil
}

func (c *CreateOrderCommand) setDeveloperID(developerID *kernel.ID) error {
	if developerID == nil {
		return nil
	}
	if err := developerID.Validate(); err != nil {
		return err
	}
	id := *developerID
	c.developerID = &id
	return nil
}
