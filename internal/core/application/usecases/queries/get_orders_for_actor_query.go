package queries

import (
	"errors"

	"orderdesk/internal/core/domain/model/identity"
	"orderdesk/internal/pkg/guard"
)

var ErrGetOrdersForActorQueryIsNotConstructed = errors.New(
	"GetOrdersForActorQuery must be created via NewGetOrdersForActorQuery constructor",
)

// GetOrdersForActorQuery lists the orders the actor is entitled to see.
//
// Visibility by role:
//   - SuperAdmin and Finance see every order
//   - CustomerService sees the orders it created
//   - Developer sees the orders assigned to it
type GetOrdersForActorQuery struct {
	actor *identity.Actor
	guard guard.ConstructorGuard
}

func NewGetOrdersForActorQuery(actor *identity.Actor) (GetOrdersForActorQuery, error) {
	if err := actor.Validate(); err != nil {
		return GetOrdersForActorQuery{}, err
	}
	return GetOrdersForActorQuery{actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrdersForActorQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersForActorQueryIsNotConstructed)
}

func (q GetOrdersForActorQuery) Actor() *identity.Actor {
	return q.actor
}
