package queries

import (
	"context"

	"orderdesk/internal/core/domain/model/identity"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetPersonalStatsQueryHandler struct {
	db *gorm.DB
}

func NewGetPersonalStatsQueryHandler(db *gorm.DB) GetPersonalStatsQueryHandler {
	return GetPersonalStatsQueryHandler{db: db}
}

func (h GetPersonalStatsQueryHandler) Handle(
	ctx context.Context,
	query GetPersonalStatsQuery,
) (GetPersonalStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPersonalStatsQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)
	actor := query.Actor()
	userID := actor.ID().Int64()
	resp := GetPersonalStatsQueryResponse{Role: actor.Role()}

	var monthly *gorm.DB
	if actor.Role() == identity.Developer {
		monthly = db.Raw(`
			SELECT COUNT(*)
			FROM orders
			WHERE developer_id = ? AND status IN ? AND updated_at >= ?
		`, userID, []int{int(order.PendingSettlement), int(order.Verified), int(order.Settled)}, query.MonthStart())
	} else {
		monthly = db.Raw(`
			SELECT COUNT(*)
			FROM orders
			WHERE creator_id = ? AND created_at >= ?
		`, userID, query.MonthStart())
	}
	if err := monthly.Row().Scan(&resp.MonthlyOrders); err != nil {
		return GetPersonalStatsQueryResponse{}, err
	}

	var total decimal.Decimal
	if err := db.Raw(`
		SELECT COALESCE(SUM(amount), 0)
		FROM commissions
		WHERE user_id = ? AND role_at_time = ?
	`, userID, int(actor.Role())).Row().Scan(&total); err != nil {
		return GetPersonalStatsQueryResponse{}, err
	}

	var err error
	if resp.TotalCommission, err = kernel.NewMoney(total); err != nil {
		return GetPersonalStatsQueryResponse{}, err
	}

	return resp, nil
}
