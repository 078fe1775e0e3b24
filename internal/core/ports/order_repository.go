// Package ports defines the contracts between the order desk core and its
// infrastructure: repositories, the unit of work and the security primitives
// used by login.
package ports

import (
	"context"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates,
// including their work logs and commission snapshots.
type OrderRepository interface {
	// Add persists a new order and assigns its identity via Order.Identify.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order. Work logs without identity are
	// inserted; the commission snapshot is rewritten as a whole.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its work logs and commissions.
	// Returns errs.ObjectNotFoundError when no order has that id.
	Get(ctx context.Context, id kernel.ID) (*order.Order, error)
}
