package commands

import (
	"errors"
	"strings"

	"orderdesk/internal/core/domain/model/identity"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/guard"
)

var ErrCreateUserCommandIsNotConstructed = errors.New(
	"CreateUserCommand must be created via NewCreateUserCommand constructor",
)

// CreateUserCommand registers a staff account on behalf of a super admin.
//
// The password travels in clear text only until the handler hashes it. The default
// commission rate is optional; users without one earn commissions only through an
// order's special commission.
//
// Example:
//
//	rate, _ := kernel.RateFromString("10")
//	cmd, err := NewCreateUserCommand(admin, "dana", "Dana Ortiz", identity.Developer, "s3cret!", &rate)
//	if err != nil {
//	    return err // missing username, short password, invalid role
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateUserCommand struct {
	actor                 *identity.Actor
	username              string
	fullName              string
	role                  identity.Role
	password              string
	defaultCommissionRate *kernel.Rate

	guard guard.ConstructorGuard
}

// NewCreateUserCommand validates the account fields. All problems are reported
// together with errors.Join.
func NewCreateUserCommand(
	actor *identity.Actor,
	username, fullName string,
	role identity.Role,
	password string,
	defaultCommissionRate *kernel.Rate,
) (CreateUserCommand, error) {
	var rateErr error
	if defaultCommissionRate != nil {
		rateErr = defaultCommissionRate.Validate()
	}
	if err := errors.Join(
		actor.Validate(),
		validateUsername(username),
		role.Validate(),
		validatePassword(password),
		rateErr,
	); err != nil {
		return CreateUserCommand{}, err
	}

	return CreateUserCommand{
		actor:                 actor,
		username:              strings.TrimSpace(username),
		fullName:              strings.TrimSpace(fullName),
		role:                  role,
		password:              password,
		defaultCommissionRate: defaultCommissionRate,
		guard:                 guard.NewConstructorGuard(),
	}, nil
}

// Validate returns ErrCreateUserCommandIsNotConstructed for zero-value commands.
func (c CreateUserCommand) Validate() error {
	return c.guard.Validate(ErrCreateUserCommandIsNotConstructed)
}

func (c CreateUserCommand) Actor() *identity.Actor {
	return c.actor
}

func (c CreateUserCommand) Username() string {
	return c.username
}

func (c CreateUserCommand) FullName() string {
	return c.fullName
}

func (c CreateUserCommand) Role() identity.Role {
	return c.role
}

func (c CreateUserCommand) Password() string {
	return c.password
}

func (c CreateUserCommand) DefaultCommissionRate() *kernel.Rate {
	return c.defaultCommissionRate
}
