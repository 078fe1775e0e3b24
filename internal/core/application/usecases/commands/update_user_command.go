package commands

import (
	"errors"

	"orderdesk/internal/core/domain/model/identity"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/guard"
)

var ErrUpdateUserCommandIsNotConstructed = errors.New(
	"UpdateUserCommand must be created via NewUpdateUserCommand constructor",
)

// UserChanges lists the account fields to overwrite. Nil fields are left alone.
// A non-empty Password is hashed again; ClearCommissionRate drops the standing
// rate and wins over DefaultCommissionRate.
type UserChanges struct {
	Username              *string
	FullName              *string
	Role                  *identity.Role
	Password              *string
	DefaultCommissionRate *kernel.Rate
	ClearCommissionRate   bool
	IsActive              *bool
}

func (c UserChanges) validate() error {
	var all []error
	if c.Username != nil {
		all = append(all, validateUsername(*c.Username))
	}
	if c.Role != nil {
		all = append(all, c.Role.Validate())
	}
	if c.Password != nil && *c.Password != "" {
		all = append(all, validatePassword(*c.Password))
	}
	if c.DefaultCommissionRate != nil && !c.ClearCommissionRate {
		all = append(all, c.DefaultCommissionRate.Validate())
	}
	return errors.Join(all...)
}

// UpdateUserCommand edits an existing account.
//
// Example:
//
//	name := "dana.o"
//	cmd, err := NewUpdateUserCommand(admin, danaID, UserChanges{Username: &name})
type UpdateUserCommand struct {
	actor   *identity.Actor
	userID  kernel.ID
	changes UserChanges

	guard guard.ConstructorGuard
}

func NewUpdateUserCommand(actor *identity.Actor, userID kernel.ID, changes UserChanges) (UpdateUserCommand, error) {
	var idErr error
	if userID.IsZero() {
		idErr = errs.NewValueIsRequiredError("userID")
	}
	if err := errors.Join(actor.Validate(), idErr, changes.validate()); err != nil {
		return UpdateUserCommand{}, err
	}

	return UpdateUserCommand{
		actor:   actor,
		userID:  userID,
		changes: changes,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateUserCommand) Validate() error {
	return c.guard.Validate(ErrUpdateUserCommandIsNotConstructed)
}

func (c UpdateUserCommand) Actor() *identity.Actor {
	return c.actor
}

func (c UpdateUserCommand) UserID() kernel.ID {
	return c.userID
}

func (c UpdateUserCommand) Changes() UserChanges {
	return c.changes
}
