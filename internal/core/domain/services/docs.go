// Package services provides the domain services of the order desk: the decisions
// that need more than one aggregate or that sit outside every aggregate.
//
// The package includes:
//   - OrderPolicy: the authorization engine, evaluating an Actor against an Order
//     into a PermissionSet
//   - RouteGuard: the access decision for protected resources (login redirect with
//     resume path, redirect home on role mismatch)
//   - CommissionCalculator: the commission snapshot taken when finance verifies an order
//
// All services are stateless and pure. They never read ambient state, so the same
// PermissionSet that drives what a client shows is re-checked by every write.
package services
