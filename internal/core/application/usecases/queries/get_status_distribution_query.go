package queries

import (
	"errors"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/guard"
)

var ErrGetStatusDistributionQueryIsNotConstructed = errors.New(
	"GetStatusDistributionQuery must be created via NewGetStatusDistributionQuery constructor",
)

// GetStatusDistributionQuery backs the global dashboard and the orders-by-status gauge.
type GetStatusDistributionQuery struct {
	guard guard.ConstructorGuard
}

func NewGetStatusDistributionQuery() GetStatusDistributionQuery {
	return GetStatusDistributionQuery{guard: guard.NewConstructorGuard()}
}

func (q GetStatusDistributionQuery) Validate() error {
	return q.guard.Validate(ErrGetStatusDistributionQueryIsNotConstructed)
}

type StatusCount struct {
	Status order.Status
	Count  int64
}

// GetStatusDistributionQueryResponse lists every status, including empty ones, in
// workflow order.
type GetStatusDistributionQueryResponse struct {
	Counts            []StatusCount
	TotalOrders       int64
	TotalUsers        int64
	TotalSettledValue kernel.Money
}
