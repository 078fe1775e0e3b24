package commands

import (
	"context"
	"errors"

	"orderdesk/internal/core/domain/model/identity"
	"orderdesk/internal/core/domain/model/user"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/errs"
)

// UpdateUserCommandHandler applies UserChanges to an account.
//
// A super admin cannot deactivate or demote their own account, so at least one
// administrator always remains able to log in.
//
// Example:
//
//	handler := NewUpdateUserCommandHandler(userUoWFactory, hasher)
//	updated, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrObjectAlreadyExists) {
//	    // the new username belongs to someone else
//	}
type UpdateUserCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
}

// NewUpdateUserCommandHandler creates a handler for account edits. Requires a
// UserUoWFactory for storage and the hasher used for new passwords.
func NewUpdateUserCommandHandler(uowFactory UserUoWFactory, hasher ports.PasswordHasher) UpdateUserCommandHandler {
	return UpdateUserCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
	}
}

// Handle loads the user, applies the changes in one transaction and returns the
// stored result.
//
// Returns:
//   - errs.PermissionDeniedError for non admins and for self deactivation or demotion
//   - errs.ObjectNotFoundError when the user does not exist
//   - errs.ObjectAlreadyExistsError when the new username is taken
func (h UpdateUserCommandHandler) Handle(ctx context.Context, cmd UpdateUserCommand) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := authorizeUserAdministration(cmd.Actor(), "UPDATE_USER"); err != nil {
		return nil, err
	}

	changes := cmd.Changes()
	if cmd.Actor().Is(cmd.UserID()) {
		if changes.IsActive != nil && !*changes.IsActive {
			return nil, errs.NewPermissionDeniedError("UPDATE_USER", "cannot deactivate own account")
		}
		if changes.Role != nil && *changes.Role != identity.SuperAdmin {
			return nil, errs.NewPermissionDeniedError("UPDATE_USER", "cannot change own role")
		}
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	users := uow.UserRepository()
	u, err := users.Get(ctx, cmd.UserID())
	if err != nil {
		return nil, err
	}

	if err = h.apply(ctx, users, u, changes); err != nil {
		return nil, err
	}

	if err = users.Update(ctx, u); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return u, nil
}

func (h UpdateUserCommandHandler) apply(
	ctx context.Context,
	users ports.UserRepository,
	u *user.User,
	changes UserChanges,
) error {
	if changes.Username != nil {
		if err := u.Rename(*changes.Username); err != nil {
			return err
		}
		other, err := users.GetByUsername(ctx, u.Username())
		switch {
		case err == nil && !other.ID().IsEqual(u.ID()):
			return errs.NewObjectAlreadyExistsError("username", u.Username())
		case err != nil && !errors.Is(err, errs.ErrObjectNotFound):
			return err
		}
	}
	if changes.FullName != nil {
		u.ChangeFullName(*changes.FullName)
	}
	if changes.Role != nil {
		if err := u.ChangeRole(*changes.Role); err != nil {
			return err
		}
	}
	if changes.Password != nil && *changes.Password != "" {
		hash, err := h.hasher.Hash(*changes.Password)
		if err != nil {
			return err
		}
		if err = u.ChangePasswordHash(hash); err != nil {
			return err
		}
	}
	switch {
	case changes.ClearCommissionRate:
		if err := u.ChangeDefaultCommissionRate(nil); err != nil {
			return err
		}
	case changes.DefaultCommissionRate != nil:
		if err := u.ChangeDefaultCommissionRate(changes.DefaultCommissionRate); err != nil {
			return err
		}
	}
	if changes.IsActive != nil {
		if *changes.IsActive {
			u.Activate()
		} else {
			u.Deactivate()
		}
	}
	return nil
}
