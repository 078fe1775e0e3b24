package queries

import (
	"errors"
	"time"

	"orderdesk/internal/core/domain/model/identity"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/guard"
)

var ErrGetPersonalStatsQueryIsNotConstructed = errors.New(
	"GetPersonalStatsQuery must be created via NewGetPersonalStatsQuery constructor",
)

// GetPersonalStatsQuery summarizes the current month for a customer-service user or
// a developer. The month is the UTC calendar month containing now.
type GetPersonalStatsQuery struct {
	actor *identity.Actor
	now   time.Time
	guard guard.ConstructorGuard
}

func NewGetPersonalStatsQuery(actor *identity.Actor, now time.Time) (GetPersonalStatsQuery, error) {
	if err := actor.Validate(); err != nil {
		return GetPersonalStatsQuery{}, err
	}
	if !actor.Role().In(identity.CustomerService, identity.Developer) {
		return GetPersonalStatsQuery{}, errs.NewPermissionDeniedError(
			"PERSONAL_STATS", "only customer service and developers have personal stats",
		)
	}
	return GetPersonalStatsQuery{actor: actor, now: now, guard: guard.NewConstructorGuard()}, nil
}

func (q GetPersonalStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetPersonalStatsQueryIsNotConstructed)
}

func (q GetPersonalStatsQuery) Actor() *identity.Actor {
	return q.actor
}

// MonthStart is midnight UTC of the first day of the month.
func (q GetPersonalStatsQuery) MonthStart() time.Time {
	now := q.now.UTC()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// GetPersonalStatsQueryResponse counts created orders for customer service and
// completed ones (PendingSettlement or later, touched this month) for developers.
type GetPersonalStatsQueryResponse struct {
	Role            identity.Role
	MonthlyOrders   int64
	TotalCommission kernel.Money
}
