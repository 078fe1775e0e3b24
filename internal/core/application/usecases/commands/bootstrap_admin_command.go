package commands

import (
	"errors"

	"orderdesk/internal/pkg/guard"
)

var ErrBootstrapAdminCommandIsNotConstructed = errors.New(
	"BootstrapAdminCommand must be created via NewBootstrapAdminCommand constructor",
)

// BootstrapAdminCommand makes sure a super admin account exists, so a fresh
// installation can be logged into.
type BootstrapAdminCommand struct {
	login LoginCommand

	guard guard.ConstructorGuard
}

func NewBootstrapAdminCommand(username, password string) (BootstrapAdminCommand, error) {
	login, err := NewLoginCommand(username, password)
	if err != nil {
		return BootstrapAdminCommand{}, err
	}
	return BootstrapAdminCommand{
		login: login,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c BootstrapAdminCommand) Validate() error {
	return c.guard.Validate(ErrBootstrapAdminCommandIsNotConstructed)
}

func (c BootstrapAdminCommand) Username() string {
	return c.login.Username()
}

func (c BootstrapAdminCommand) Password() string {
	return c.login.Password()
}
