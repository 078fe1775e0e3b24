package commands

import (
	"context"

	"orderdesk/internal/pkg/errs"
)

// DeleteUserCommandHandler removes accounts. Super admins cannot delete themselves.
type DeleteUserCommandHandler struct {
	uowFactory UserUoWFactory
}

func NewDeleteUserCommandHandler(uowFactory UserUoWFactory) DeleteUserCommandHandler {
	return DeleteUserCommandHandler{uowFactory: uowFactory}
}

// Handle deletes the user inside a transaction.
//
// Returns:
//   - errs.PermissionDeniedError for non admins and for self deletion
//   - errs.ObjectNotFoundError when the user does not exist
func (h DeleteUserCommandHandler) Handle(ctx context.Context, cmd DeleteUserCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := authorizeUserAdministration(cmd.Actor(), "DELETE_USER"); err != nil {
		return err
	}
	if cmd.Actor().Is(cmd.UserID()) {
		return errs.NewPermissionDeniedError("DELETE_USER", "cannot delete own account")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.UserRepository().Delete(ctx, cmd.UserID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
