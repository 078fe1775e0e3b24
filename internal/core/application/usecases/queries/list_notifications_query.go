package queries

import (
	"errors"
	"time"

	"orderdesk/internal/core/domain/model/identity"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/guard"
)

var ErrListNotificationsQueryIsNotConstructed = errors.New(
	"ListNotificationsQuery must be created via NewListNotificationsQuery constructor",
)

// ListNotificationsQuery returns the actor's own notifications.
type ListNotificationsQuery struct {
	actor *identity.Actor
	guard guard.ConstructorGuard
}

func NewListNotificationsQuery(actor *identity.Actor) (ListNotificationsQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListNotificationsQuery{}, err
	}
	return ListNotificationsQuery{actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q ListNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrListNotificationsQueryIsNotConstructed)
}

func (q ListNotificationsQuery) Actor() *identity.Actor {
	return q.actor
}

type NotificationView struct {
	ID             kernel.ID
	Content        string
	IsRead         bool
	RelatedOrderID *kernel.ID
	CreatedAt      time.Time
}
