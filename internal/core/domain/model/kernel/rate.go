package kernel

import (
	"errors"

	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrRateIsNotConstructed is returned when validating a zero-value Rate.
var ErrRateIsNotConstructed = errors.New("Rate must be created via NewRate or RateFromString")

// Rate is a commission percentage, e.g. 12.5 means 12.5% of the final price.
type Rate struct {
	percent decimal.Decimal
	guard   guard.ConstructorGuard
}

// NewRate accepts percentages in [0, 100].
func NewRate(percent decimal.Decimal) (Rate, error) {
	if percent.IsNegative() || percent.GreaterThan(hundred) {
		return Rate{}, errs.NewValueIsOutOfRangeError("rate", percent.String(), 0, 100)
	}
	return Rate{
		percent: percent,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// RateFromString parses a percentage such as "10.00".
func RateFromString(s string) (Rate, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Rate{}, errs.NewValueIsInvalidErrorWithCause("rate is invalid", err)
	}
	return NewRate(d)
}

// Percent returns the percentage value.
func (r Rate) Percent() decimal.Decimal {
	return r.percent
}

func (r Rate) IsEqual(other Rate) bool {
	return r.percent.Equal(other.percent)
}

func (r Rate) String() string {
	return r.percent.String()
}

func (r Rate) Validate() error {
	return r.guard.Validate(ErrRateIsNotConstructed)
}
