package commands

import (
	"context"
	"errors"
	"orderdesk/internal/core/domain/model/user"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/errs"
)

// CreateUserCommandHandler creates staff accounts.
// Only super admins may call it; the username must be free.
//
// Example:
//
//	handler := NewCreateUserCommandHandler(userUoWFactory, hasher)
//	created, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrPermissionDenied):
//	    // caller is not a super admin
//	case errors.Is(err, errs.ErrObjectAlreadyExists):
//	    // username taken
//	case err != nil:
//	    return err
//	}
//	log.Printf("created user %s", created.ID())
type CreateUserCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
}

// NewCreateUserCommandHandler wires the handler to account storage and the
// password hasher used by Login.
func NewCreateUserCommandHandler(uowFactory UserUoWFactory, hasher ports.PasswordHasher) CreateUserCommandHandler {
	return CreateUserCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
	}
}

// Handle stores the new account and returns it with its assigned id.
//
// Returns:
//   - errs.PermissionDeniedError when the actor is not a super admin
//   - errs.ObjectAlreadyExistsError when the username is taken
//   - hasher and storage errors unchanged
func (h CreateUserCommandHandler) Handle(ctx context.Context, cmd CreateUserCommand) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := authorizeUserAdministration(cmd.Actor(), "CREATE_USER"); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	users := uow.UserRepository()
	_, err := users.GetByUsername(ctx, cmd.Username())
	if err == nil {
		return nil, errs.NewObjectAlreadyExistsError("username", cmd.Username())
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	hash, err := h.hasher.Hash(cmd.Password())
	if err != nil {
		return nil, err
	}

	created, err := user.NewUser(cmd.Username(), cmd.FullName(), cmd.Role(), hash, cmd.DefaultCommissionRate())
	if err != nil {
		return nil, err
	}

	if err = users.Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}
