package identity

import (
	"errors"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/guard"
)

// ErrActorIsNotConstructed is returned by Validate for an Actor built without NewActor.
var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Actor is the authenticated identity performing an action. It is an immutable
// snapshot and is never changed mid-session.
type Actor struct {
	id    kernel.ID
	role  Role
	guard guard.ConstructorGuard
}

// NewActor validates id and role and returns the actor snapshot.
func NewActor(id kernel.ID, role Role) (*Actor, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return nil, err
	}
	return &Actor{
		id:    id,
		role:  role,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (a *Actor) Validate() error {
	if a == nil {
		return ErrActorIsNotConstructed
	}
	return a.guard.Validate(ErrActorIsNotConstructed)
}

func (a *Actor) ID() kernel.ID {
	return a.id
}

func (a *Actor) Role() Role {
	return a.role
}

// Is reports whether the actor is the user identified by id.
func (a *Actor) Is(id kernel.ID) bool {
	return a != nil && !id.IsZero() && a.id.IsEqual(id)
}
