package order

import (
	"errors"
	"fmt"
	"time"

	"orderdesk/internal/core/domain/model/identity"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"
)

// Commission is the payout share a user earns on an order, snapshotted on verification.
type Commission struct {
	id         kernel.ID
	userID     kernel.ID
	amount     kernel.Money
	roleAtTime identity.Role
	createdAt  time.Time
}

// NewCommission builds an unpersisted commission for userID acting as role.
func NewCommission(userID kernel.ID, amount kernel.Money, role identity.Role, createdAt time.Time) (Commission, error) {
	if err := errors.Join(userID.Validate(), amount.Validate(), validateEarningRole(role)); err != nil {
		return Commission{}, err
	}
	return Commission{
		userID:     userID,
		amount:     amount,
		roleAtTime: role,
		createdAt:  createdAt,
	}, nil
}

// RestoreCommission rebuilds a persisted commission.
func RestoreCommission(
	id, userID kernel.ID,
	amount kernel.Money,
	role identity.Role,
	createdAt time.Time,
) (Commission, error) {
	c, err := NewCommission(userID, amount, role, createdAt)
	if err != nil {
		return Commission{}, err
	}
	if err := id.Validate(); err != nil {
		return Commission{}, err
	}
	c.id = id
	return c, nil
}

func validateEarningRole(role identity.Role) error {
	if !role.In(identity.CustomerService, identity.Developer) {
		return errs.NewValueIsInvalidErrorWithCause(
			"role is invalid",
			fmt.Errorf("%s does not earn commissions", role),
		)
	}
	return nil
}

func (c Commission) ID() kernel.ID {
	return c.id
}

func (c Commission) UserID() kernel.ID {
	return c.userID
}

func (c Commission) Amount() kernel.Money {
	return c.amount
}

// RoleAtTime is the role the user held on the order when the commission was computed.
func (c Commission) RoleAtTime() identity.Role {
	return c.roleAtTime
}

func (c Commission) CreatedAt() time.Time {
	return c.createdAt
}
