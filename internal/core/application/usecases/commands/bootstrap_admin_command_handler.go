package commands

import (
	"context"
	"errors"

	"orderdesk/internal/core/domain/model/identity"
	"orderdesk/internal/core/domain/model/user"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/errs"
)

// BootstrapAdminCommandHandler creates the super admin account when the username
// is free. Existing accounts are left untouched, whatever their role.
type BootstrapAdminCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
}

func NewBootstrapAdminCommandHandler(uowFactory UserUoWFactory, hasher ports.PasswordHasher) BootstrapAdminCommandHandler {
	return BootstrapAdminCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
	}
}

// Handle reports whether an account was created.
func (h BootstrapAdminCommandHandler) Handle(ctx context.Context, cmd BootstrapAdminCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	users := uow.UserRepository()
	_, err := users.GetByUsername(ctx, cmd.Username())
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return false, err
	}

	hash, err := h.hasher.Hash(cmd.Password())
	if err != nil {
		return false, err
	}

	admin, err := user.NewUser(cmd.Username(), "Administrator", identity.SuperAdmin, hash, nil)
	if err != nil {
		return false, err
	}

	if err = users.Add(ctx, admin); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	return true, nil
}
