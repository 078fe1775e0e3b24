// Package order provides the Order aggregate and its lifecycle for the order desk.
//
// The package includes:
//   - Status: the closed workflow enumeration, with Settled and Cancelled terminal
//   - Action: the operations that move an order between statuses
//   - the transition table mapping (status, action) to the next status
//   - Order: the aggregate root holding lock flag, assignment, pricing, work logs
//     and commission snapshots
//   - WorkLog, Commission and CommissionOverride: child values owned by the order
//
// Workflow:
//
//	PendingAssignment -> PendingPayment -> InDevelopment -> Shipped -> Received
//	    -> PendingSettlement -> Verified -> Settled
//
//	Shipped, Received -> InDevelopment      (RevertToDev)
//	any non-terminal  -> Cancelled          (Cancel)
//
// Requesting an action that the table does not list for the current status is rejected
// with an errs.IllegalTransitionError and leaves the order untouched. Who may request
// an action is decided by the order policy in the domain services package, not here.
package order
