package commands

import (
	"errors"
	"strings"

	"orderdesk/internal/core/domain/model/identity"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/guard"
)

var ErrAddWorkLogCommandIsNotConstructed = errors.New(
	"AddWorkLogCommand must be created via NewAddWorkLogCommand constructor",
)

// AddWorkLogCommand appends a progress note to an order.
type AddWorkLogCommand struct {
	actor   *identity.Actor
	orderID kernel.ID
	content string

	guard guard.ConstructorGuard
}

func NewAddWorkLogCommand(actor *identity.Actor, orderID kernel.ID, content string) (AddWorkLogCommand, error) {
	var contentErr error
	if strings.TrimSpace(content) == "" {
		contentErr = errs.NewValueIsRequiredError("content")
	}

	if err := errors.Join(actor.Validate(), orderID.Validate(), contentErr); err != nil {
		return AddWorkLogCommand{}, err
	}

	return AddWorkLogCommand{
		actor:   actor,
		orderID: orderID,
		content: content,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c AddWorkLogCommand) Validate() error {
	return c.guard.Validate(ErrAddWorkLogCommandIsNotConstructed)
}

func (c AddWorkLogCommand) Actor() *identity.Actor {
	return c.actor
}

func (c AddWorkLogCommand) OrderID() kernel.ID {
	return c.orderID
}

func (c AddWorkLogCommand) Content() string {
	return c.content
}
