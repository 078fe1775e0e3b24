package services

import (
	"fmt"

	"orderdesk/internal/core/domain/model/identity"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"
)

// Operation is an order mutation that is not a lifecycle transition.
type Operation string

const (
	OperationAddWorkLog           Operation = "ADD_WORK_LOG"
	OperationSetSpecialCommission Operation = "SET_SPECIAL_COMMISSION"
	OperationUpdateDetails        Operation = "UPDATE_DETAILS"
)

// PermissionSet holds one flag per action an actor may take on an order.
// The zero value denies everything.
type PermissionSet struct {
	CanCancel               bool
	CanRevertToDev          bool
	CanSettleByTech         bool
	CanAddWorkLog           bool
	CanSetSpecialCommission bool

	CanRequestPayment   bool
	CanStartDevelopment bool
	CanShip             bool
	CanConfirmReceipt   bool
	CanVerify           bool
	CanSettle           bool
	CanUpdateDetails    bool
}

// Allows maps a lifecycle action to its flag. Unknown actions are denied.
func (p PermissionSet) Allows(action order.Action) bool {
	switch action {
	case order.Cancel:
		return p.CanCancel
	case order.RevertToDev:
		return p.CanRevertToDev
	case order.SettleByTech:
		return p.CanSettleByTech
	case order.RequestPayment:
		return p.CanRequestPayment
	case order.StartDevelopment:
		return p.CanStartDevelopment
	case order.Ship:
		return p.CanShip
	case order.ConfirmReceipt:
		return p.CanConfirmReceipt
	case order.Verify:
		return p.CanVerify
	case order.Settle:
		return p.CanSettle
	case order.UnknownAction:
		return false
	}
	return false
}

// AllowsOperation maps a non-transition operation to its flag.
func (p PermissionSet) AllowsOperation(op Operation) bool {
	switch op {
	case OperationAddWorkLog:
		return p.CanAddWorkLog
	case OperationSetSpecialCommission:
		return p.CanSetSpecialCommission
	case OperationUpdateDetails:
		return p.CanUpdateDetails
	}
	return false
}

// Actions lists the lifecycle actions the set allows, in table order.
func (p PermissionSet) Actions() []order.Action {
	var allowed []order.Action
	for _, a := range order.Actions() {
		if p.Allows(a) {
			allowed = append(allowed, a)
		}
	}
	return allowed
}

// OrderPolicy decides what an actor may do with an order.
//
// Rules:
//   - SuperAdmin may cancel any non-terminal order and revert shipped or received
//     orders regardless of the lock, and is the only role that sets special commissions
//   - CustomerService drives the customer-facing transitions and edits details, all
//     blocked by the lock
//   - Developer settles by tech and writes work logs, only on orders assigned to them
//   - Finance verifies and settles unlocked orders
//
// A missing actor, a missing order or a missing developer assignment denies everything
// that depends on it.
type OrderPolicy struct{}

func NewOrderPolicy() OrderPolicy {
	return OrderPolicy{}
}

// Evaluate returns the full PermissionSet of actor on o. It never panics.
func (OrderPolicy) Evaluate(actor *identity.Actor, o *order.Order) PermissionSet {
	if actor.Validate() != nil || o.Validate() != nil {
		return PermissionSet{}
	}

	status := o.Status()
	locked := o.IsLocked()

	switch actor.Role() {
	case identity.SuperAdmin:
		return PermissionSet{
			CanCancel:               !status.IsTerminal(),
			CanRevertToDev:          status.In(order.Shipped, order.Received),
			CanSetSpecialCommission: true,
		}
	case identity.CustomerService:
		if locked {
			return PermissionSet{}
		}
		return PermissionSet{
			CanCancel:           !status.IsTerminal(),
			CanRevertToDev:      status.In(order.Shipped, order.Received),
			CanRequestPayment:   status == order.PendingAssignment,
			CanStartDevelopment: status == order.PendingPayment,
			CanShip:             status == order.InDevelopment,
			CanConfirmReceipt:   status == order.Shipped,
			CanUpdateDetails:    !status.IsTerminal(),
		}
	case identity.Developer:
		if !o.IsAssignedTo(actor.ID()) {
			return PermissionSet{}
		}
		return PermissionSet{
			CanSettleByTech: status == order.Received,
			CanAddWorkLog:   !locked,
		}
	case identity.Finance:
		if locked {
			return PermissionSet{}
		}
		return PermissionSet{
			CanVerify: status == order.PendingSettlement,
			CanSettle: status == order.Verified,
		}
	case identity.Unknown:
		return PermissionSet{}
	}
	return PermissionSet{}
}

// CanView reports whether actor may read o. Visibility follows the order listing:
// SuperAdmin and Finance see every order, CustomerService the orders it created and
// Developer the orders assigned to it.
func (OrderPolicy) CanView(actor *identity.Actor, o *order.Order) bool {
	if actor.Validate() != nil || o.Validate() != nil {
		return false
	}

	switch actor.Role() {
	case identity.SuperAdmin, identity.Finance:
		return true
	case identity.CustomerService:
		return o.CreatorID().IsEqual(actor.ID())
	case identity.Developer:
		return o.IsAssignedTo(actor.ID())
	case identity.Unknown:
		return false
	}
	return false
}

// Allows reports whether actor may perform action on o.
func (p OrderPolicy) Allows(actor *identity.Actor, o *order.Order, action order.Action) bool {
	return p.Evaluate(actor, o).Allows(action)
}

// Authorize returns a PermissionDeniedError when actor may not perform action on o.
func (p OrderPolicy) Authorize(actor *identity.Actor, o *order.Order, action order.Action) error {
	if p.Allows(actor, o, action) {
		return nil
	}
	return errs.NewPermissionDeniedError(action.String(), denialReason(actor, o))
}

// AuthorizeOperation is Authorize for non-transition operations.
func (p OrderPolicy) AuthorizeOperation(actor *identity.Actor, o *order.Order, op Operation) error {
	if p.Evaluate(actor, o).AllowsOperation(op) {
		return nil
	}
	return errs.NewPermissionDeniedError(string(op), denialReason(actor, o))
}

func denialReason(actor *identity.Actor, o *order.Order) string {
	switch {
	case actor.Validate() != nil:
		return "not authenticated"
	case o.Validate() != nil:
		return "order is missing"
	case o.IsLocked() && actor.Role() != identity.SuperAdmin:
		return "order is locked"
	case actor.Role() == identity.Developer && !o.IsAssignedTo(actor.ID()):
		return "not the assigned developer"
	default:
		return fmt.Sprintf("not allowed for %s in status %s", actor.Role(), o.Status())
	}
}
