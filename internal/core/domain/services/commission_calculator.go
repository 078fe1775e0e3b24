package services

import (
	"errors"
	"time"

	"orderdesk/internal/core/domain/model/identity"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/domain/model/user"
	"orderdesk/internal/pkg/errs"
)

// CommissionCalculator computes the commission snapshot of a verified order.
//
// For the creator (as CustomerService) and the assigned developer (as Developer) the
// rate is the order's override when set, otherwise the user's default rate. A user
// with neither earns nothing. Amounts are finalPrice * rate / 100 rounded to cents.
type CommissionCalculator struct{}

func NewCommissionCalculator() CommissionCalculator {
	return CommissionCalculator{}
}

// Calculate returns the commissions for o. It returns no records when the order has
// no positive final price. developer may be nil for an unassigned order.
func (CommissionCalculator) Calculate(
	o *order.Order,
	creator *user.User,
	developer *user.User,
	at time.Time,
) ([]order.Commission, error) {
	if err := errors.Join(o.Validate(), creator.Validate()); err != nil {
		return nil, err
	}
	if !o.CreatorID().IsEqual(creator.ID()) {
		return nil, errs.NewValueIsInvalidError("creator does not match the order")
	}
	if developer != nil && !o.IsAssignedTo(developer.ID()) {
		return nil, errs.NewValueIsInvalidError("developer is not assigned to the order")
	}

	price, ok := o.FinalPrice()
	if !ok || !price.IsPositive() {
		return nil, nil
	}

	override := o.SpecialCommission()
	var result []order.Commission

	csRate, ok := override.CSRate()
	if !ok {
		csRate, ok = creator.DefaultCommissionRate()
	}
	if ok {
		c, err := commissionFor(creator.ID(), price, csRate, identity.CustomerService, at)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}

	if developer == nil {
		return result, nil
	}

	techRate, ok := override.TechRate()
	if !ok {
		techRate, ok = developer.DefaultCommissionRate()
	}
	if ok {
		c, err := commissionFor(developer.ID(), price, techRate, identity.Developer, at)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}

	return result, nil
}

func commissionFor(
	userID kernel.ID,
	price kernel.Money,
	rate kernel.Rate,
	role identity.Role,
	at time.Time,
) (order.Commission, error) {
	return order.NewCommission(userID, price.ApplyRate(rate), role, at)
}
