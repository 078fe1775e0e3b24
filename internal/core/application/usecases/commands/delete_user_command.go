package commands

import (
	"errors"

	"orderdesk/internal/core/domain/model/identity"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/guard"
)

var ErrDeleteUserCommandIsNotConstructed = errors.New(
	"DeleteUserCommand must be created via NewDeleteUserCommand constructor",
)

// DeleteUserCommand removes an account for good. Orders, work logs and commissions
// keep the bare user id and show an empty username afterwards, so accounts with
// history are usually better deactivated.
type DeleteUserCommand struct {
	actor  *identity.Actor
	userID kernel.ID

	guard guard.ConstructorGuard
}

func NewDeleteUserCommand(actor *identity.Actor, userID kernel.ID) (DeleteUserCommand, error) {
	var idErr error
	if userID.IsZero() {
		idErr = errs.NewValueIsRequiredError("userID")
	}
	if err := errors.Join(actor.Validate(), idErr); err != nil {
		return DeleteUserCommand{}, err
	}
	return DeleteUserCommand{
		actor:  actor,
		userID: userID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c DeleteUserCommand) Validate() error {
	return c.guard.Validate(ErrDeleteUserCommandIsNotConstructed)
}

func (c DeleteUserCommand) Actor() *identity.Actor {
	return c.actor
}

func (c DeleteUserCommand) UserID() kernel.ID {
	return c.userID
}
