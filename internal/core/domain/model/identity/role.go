package identity

import (
	"fmt"

	"orderdesk/internal/pkg/errs"
)

// Role is the capability class of a user. The set is closed; every switch over Role
// in the domain is exhaustive so that adding a role fails lint until each rule is
// revisited.
type Role int

const (
	// Unknown is the invalid zero value.
	Unknown Role = iota

	// SuperAdmin bypasses the order lock and may set special commissions.
	SuperAdmin

	// CustomerService creates orders and drives them through development and delivery.
	CustomerService

	// Developer works on assigned orders, writes work logs and marks orders done.
	Developer

	// Finance verifies and settles orders.
	Finance
)

var roleNames = map[Role]string{
	SuperAdmin:      "SUPER_ADMIN",
	CustomerService: "CUSTOMER_SERVICE",
	Developer:       "DEVELOPER",
	Finance:         "FINANCE",
}

// Roles returns every valid role in declaration order.
func Roles() []Role {
	return []Role{SuperAdmin, CustomerService, Developer, Finance}
}

// ParseRole maps a wire name such as "CUSTOMER_SERVICE" to its Role.
func ParseRole(s string) (Role, error) {
	for r, name := range roleNames {
		if name == s {
			return r, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"role is invalid",
		fmt.Errorf("%q is not a known role", s),
	)
}

// Validate rejects Unknown and out-of-range values.
func (r Role) Validate() error {
	if _, ok := roleNames[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the wire name, or "UNKNOWN" for invalid values.
func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "UNKNOWN"
}

// In reports whether r is one of roles.
func (r Role) In(roles ...Role) bool {
	for _, candidate := range roles {
		if r == candidate {
			return true
		}
	}
	return false
}
