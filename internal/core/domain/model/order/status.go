package order

import (
	"fmt"

	"orderdesk/internal/pkg/errs"
)

// Status is the position of an order in its workflow.
type Status int

const (
	// Unknown is the invalid zero value.
	Unknown Status = iota

	// PendingAssignment is the initial status of a freshly created order.
	PendingAssignment

	// PendingPayment waits for the customer to pay.
	PendingPayment

	// InDevelopment means the assigned developer is working on the order.
	InDevelopment

	// Shipped means the deliverable was handed to the customer.
	Shipped

	// Received means the customer confirmed receipt.
	Received

	// PendingSettlement means the developer marked the work done and finance may verify it.
	PendingSettlement

	// Verified means finance approved the order; commissions are snapshotted here.
	Verified

	// Settled is terminal: payouts are done and the order is locked.
	Settled

	// Cancelled is terminal and reachable from every non-terminal status.
	Cancelled
)

var statusNames = map[Status]string{
	PendingAssignment: "PENDING_ASSIGNMENT",
	PendingPayment:    "PENDING_PAYMENT",
	InDevelopment:     "IN_DEVELOPMENT",
	Shipped:           "SHIPPED",
	Received:          "RECEIVED",
	PendingSettlement: "PENDING_SETTLEMENT",
	Verified:          "VERIFIED",
	Settled:           "SETTLED",
	Cancelled:         "CANCELLED",
}

// Statuses returns every valid status in workflow order, Cancelled last.
func Statuses() []Status {
	return []Status{
		PendingAssignment,
		PendingPayment,
		InDevelopment,
		Shipped,
		Received,
		PendingSettlement,
		Verified,
		Settled,
		Cancelled,
	}
}

// ParseStatus maps a wire name such as "IN_DEVELOPMENT" to its Status.
func ParseStatus(s string) (Status, error) {
	for st, name := range statusNames {
		if name == s {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a known status", s),
	)
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name, or "UNKNOWN" for invalid values.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further transition is legal from s.
func (s Status) IsTerminal() bool {
	return s == Settled || s == Cancelled
}

// In reports whether s is one of statuses.
func (s Status) In(statuses ...Status) bool {
	for _, candidate := range statuses {
		if s == candidate {
			return true
		}
	}
	return false
}

// Apply returns the status reached by performing action from s.
//
// Returns:
//   - (next, nil) when the transition table lists action for s
//   - (Unknown, *errs.IllegalTransitionError) otherwise, including every action
//     requested from a terminal status
func (s Status) Apply(action Action) (Status, error) {
	t, ok := transitions[action]
	if !ok {
		return Unknown, errs.NewIllegalTransitionError(s.String(), action.String())
	}
	if !s.In(t.from...) {
		return Unknown, errs.NewIllegalTransitionError(s.String(), action.String())
	}
	return t.to, nil
}

// CanApply reports whether Apply would succeed.
func (s Status) CanApply(action Action) bool {
	_, err := s.Apply(action)
	return err == nil
}
