package queries

import (
	"errors"
	"time"

	"orderdesk/internal/core/domain/model/identity"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/services"
	"orderdesk/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery loads one order together with what the actor may do with it.
type GetOrderQuery struct {
	actor   *identity.Actor
	orderID kernel.ID
	guard   guard.ConstructorGuard
}

func NewGetOrderQuery(actor *identity.Actor, orderID kernel.ID) (GetOrderQuery, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate()); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{actor: actor, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) Actor() *identity.Actor {
	return q.actor
}

func (q GetOrderQuery) OrderID() kernel.ID {
	return q.orderID
}

// GetOrderQueryResponse is the order detail view. Permissions drive which controls a
// client shows; every command re-checks them.
type GetOrderQueryResponse struct {
	OrderSummary
	Requirements      string
	InitialBudget     *kernel.Money
	SpecialCSRate     *kernel.Rate
	SpecialTechRate   *kernel.Rate
	ShippedAt         *time.Time
	CreatorUsername   string
	DeveloperUsername string
	WorkLogs          []WorkLogView
	Commissions       []CommissionView
	Permissions       services.PermissionSet
}

type WorkLogView struct {
	ID             kernel.ID
	AuthorID       kernel.ID
	AuthorUsername string
	Content        string
	CreatedAt      time.Time
}

type CommissionView struct {
	UserID     kernel.ID
	Username   string
	Amount     kernel.Money
	RoleAtTime identity.Role
	CreatedAt  time.Time
}
