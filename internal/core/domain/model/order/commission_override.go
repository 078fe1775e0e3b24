package order

import "orderdesk/internal/core/domain/model/kernel"

// CommissionOverride carries per-order rates that take precedence over the users'
// default rates. Nil means "use the default".
type CommissionOverride struct {
	csRate   *kernel.Rate
	techRate *kernel.Rate
}

// NewCommissionOverride copies the given rates; either may be nil.
func NewCommissionOverride(csRate, techRate *kernel.Rate) CommissionOverride {
	return CommissionOverride{
		csRate:   copyRate(csRate),
		techRate: copyRate(techRate),
	}
}

// CSRate returns the customer-service override if one is set.
func (c CommissionOverride) CSRate() (kernel.Rate, bool) {
	if c.csRate == nil {
		return kernel.Rate{}, false
	}
	return *c.csRate, true
}

// TechRate returns the developer override if one is set.
func (c CommissionOverride) TechRate() (kernel.Rate, bool) {
	if c.techRate == nil {
		return kernel.Rate{}, false
	}
	return *c.techRate, true
}

// IsEmpty reports whether neither rate is overridden.
func (c CommissionOverride) IsEmpty() bool {
	return c.csRate == nil && c.techRate == nil
}

// Merge returns c updated with the rates set in update. Rates absent from update
// are kept.
func (c CommissionOverride) Merge(update CommissionOverride) CommissionOverride {
	merged := NewCommissionOverride(c.csRate, c.techRate)
	if update.csRate != nil {
		merged.csRate = copyRate(update.csRate)
	}
	if update.techRate != nil {
		merged.techRate = copyRate(update.techRate)
	}
	return merged
}

func copyRate(r *kernel.Rate) *kernel.Rate {
	if r == nil {
		return nil
	}
	cp := *r
	return &cp
}
