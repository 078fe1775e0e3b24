package commands

import (
	"errors"

	"orderdesk/internal/core/domain/model/identity"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/guard"
)

var ErrToggleUserStatusCommandIsNotConstructed = errors.New(
	"ToggleUserStatusCommand must be created via NewToggleUserStatusCommand constructor",
)

// ToggleUserStatusCommand flips an account between active and inactive. Inactive
// users cannot log in and are not offered as developers.
type ToggleUserStatusCommand struct {
	actor  *identity.Actor
	userID kernel.ID

	guard guard.ConstructorGuard
}

func NewToggleUserStatusCommand(actor *identity.Actor, userID kernel.ID) (ToggleUserStatusCommand, error) {
	var idErr error
	if userID.IsZero() {
		idErr = errs.NewValueIsRequiredError("userID")
	}
	if err := errors.Join(actor.Validate(), idErr); err != nil {
		return ToggleUserStatusCommand{}, err
	}
	return ToggleUserStatusCommand{
		actor:  actor,
		userID: userID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c ToggleUserStatusCommand) Validate() error {
	return c.guard.Validate(ErrToggleUserStatusCommandIsNotConstructed)
}

func (c ToggleUserStatusCommand) Actor() *identity.Actor {
	return c.actor
}

func (c ToggleUserStatusCommand) UserID() kernel.ID {
	return c.userID
}
