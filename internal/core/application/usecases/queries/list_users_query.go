package queries

import (
	"errors"

	"orderdesk/internal/core/domain/model/identity"
	"orderdesk/internal/pkg/guard"
)

var ErrListUsersQueryIsNotConstructed = errors.New(
	"ListUsersQuery must be created via NewListUsersQuery constructor",
)

// ListUsersQuery lists accounts scoped to the caller's role.
//
// Visibility by role:
//   - SuperAdmin sees every account
//   - CustomerService sees active developers, the candidates for assignment
//   - everyone else sees nothing
type ListUsersQuery struct {
	actor *identity.Actor
	guard guard.ConstructorGuard
}

func NewListUsersQuery(actor *identity.Actor) (ListUsersQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListUsersQuery{}, err
	}
	return ListUsersQuery{actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q ListUsersQuery) Validate() error {
	return q.guard.Validate(ErrListUsersQueryIsNotConstructed)
}

func (q ListUsersQuery) Actor() *identity.Actor {
	return q.actor
}
