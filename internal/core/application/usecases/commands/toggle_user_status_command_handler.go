package commands

import (
	"context"
	"orderdesk/internal/core/domain/model/user"
	"orderdesk/internal/pkg/errs"
)

type ToggleUserStatusCommandHandler struct {
	uowFactory UserUoWFactory
}

func NewToggleUserStatusCommandHandler(uowFactory UserUoWFactory) ToggleUserStatusCommandHandler {
	return ToggleUserStatusCommandHandler{uowFactory: uowFactory}
}

// Handle returns the user with its new status. Admins cannot toggle themselves.
func (h ToggleUserStatusCommandHandler) Handle(ctx context.Context, cmd ToggleUserStatusCommand) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := authorizeUserAdministration(cmd.Actor(), "TOGGLE_USER_STATUS"); err != nil {
		return nil, err
	}
	if cmd.Actor().Is(cmd.UserID()) {
		return nil, errs.NewPermissionDeniedError("TOGGLE_USER_STATUS", "cannot deactivate own account")
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

	u.ToggleActive()

	if err = users.Update(ctx, u); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return u, nil
}
