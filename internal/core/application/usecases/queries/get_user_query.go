package queries

import (
	"errors"

	"orderdesk/internal/core/domain/model/identity"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/guard"
)

var ErrGetUserQueryIsNotConstructed = errors.New(
	"GetUserQuery must be created via NewGetUserQuery constructor",
)

// GetUserQuery loads one account for a super admin.
type GetUserQuery struct {
	actor  *identity.Actor
	userID kernel.ID
	guard  guard.ConstructorGuard
}

func NewGetUserQuery(actor *identity.Actor, userID kernel.ID) (GetUserQuery, error) {
	if err := errors.Join(actor.Validate(), userID.Validate()); err != nil {
		return GetUserQuery{}, err
	}
	return GetUserQuery{actor: actor, userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetUserQuery) Validate() error {
	return q.guard.Validate(ErrGetUserQueryIsNotConstructed)
}

func (q GetUserQuery) Actor() *identity.Actor {
	return q.actor
}

func (q GetUserQuery) UserID() kernel.ID {
	return q.userID
}
