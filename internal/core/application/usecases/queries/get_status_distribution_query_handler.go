package queries

import (
	"context"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetStatusDistributionQueryHandler struct {
	db *gorm.DB
}

func NewGetStatusDistributionQueryHandler(db *gorm.DB) GetStatusDistributionQueryHandler {
	return GetStatusDistributionQueryHandler{db: db}
}

func (h GetStatusDistributionQueryHandler) Handle(
	ctx context.Context,
	query GetStatusDistributionQuery,
) (GetStatusDistributionQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetStatusDistributionQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)

	rows, err := db.Raw(`
		SELECT status, COUNT(*)
		FROM orders
		GROUP BY status
	`).Rows()
	if err != nil {
		return GetStatusDistributionQueryResponse{}, err
	}
	defer rows.Close()

	counts := make(map[order.Status]int64)
	for rows.Next() {
		var (
			status int
			count  int64
		)
		if err = rows.Scan(&status, &count); err != nil {
			return GetStatusDistributionQueryResponse{}, err
		}
		counts[order.Status(status)] = count
	}
	if err = rows.Err(); err != nil {
		return GetStatusDistributionQueryResponse{}, err
	}

	var resp GetStatusDistributionQueryResponse
	for _, status := range order.Statuses() {
		resp.Counts = append(resp.Counts, StatusCount{Status: status, Count: counts[status]})
		resp.TotalOrders += counts[status]
	}

	var settled decimal.Decimal
	if err = db.Raw(`
		SELECT COALESCE(SUM(final_price), 0)
		FROM orders
		WHERE status = ?
	`, int(order.Settled)).Row().Scan(&settled); err != nil {
		return GetStatusDistributionQueryResponse{}, err
	}
	if resp.TotalSettledValue, err = kernel.NewMoney(settled); err != nil {
		return GetStatusDistributionQueryResponse{}, err
	}

	if err = db.Raw(`SELECT COUNT(*) FROM users`).Row().Scan(&resp.TotalUsers); err != nil {
		return GetStatusDistributionQueryResponse{}, err
	}

	return resp, nil
}
