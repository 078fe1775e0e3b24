package ports

import (
	"context"

	"orderdesk/internal/core/domain/model/identity"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/user"
)

// UserRepository defines the persistence contract for staff accounts.
type UserRepository interface {
	// Add persists a new user and assigns its identity. A taken username yields
	// errs.ObjectAlreadyExistsError.
	Add(ctx context.Context, u *user.User) error

	// Update persists changes to an existing user. A taken username yields
	// errs.ObjectAlreadyExistsError, an unknown id errs.ObjectNotFoundError.
	Update(ctx context.Context, u *user.User) error

	// Delete removes the user; errs.ObjectNotFoundError when nothing was deleted.
	Delete(ctx context.Context, id kernel.ID) error

	// Get returns errs.ObjectNotFoundError when no user has that id.
	Get(ctx context.Context, id kernel.ID) (*user.User, error)

	// GetByUsername returns errs.ObjectNotFoundError for unknown usernames.
	GetByUsername(ctx context.Context, username string) (*user.User, error)

	// ListActiveByRole returns active users holding role, ordered by id.
	ListActiveByRole(ctx context.Context, role identity.Role) ([]*user.User, error)
}
