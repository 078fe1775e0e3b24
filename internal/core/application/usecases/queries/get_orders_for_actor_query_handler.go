package queries

import (
	"context"

	"orderdesk/internal/core/domain/model/identity"

	"gorm.io/gorm"
)

type GetOrdersForActorQueryHandler struct {
	db *gorm.DB
}

func NewGetOrdersForActorQueryHandler(db *gorm.DB) GetOrdersForActorQueryHandler {
	return GetOrdersForActorQueryHandler{db: db}
}

// Handle returns the visible orders newest first. Roles without a listing get an
// empty slice.
func (h GetOrdersForActorQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersForActorQuery,
) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]OrderSummary, 0)

	actor := query.Actor()
	var (
		where string
		args  []any
	)
	switch actor.Role() {
	case identity.SuperAdmin, identity.Finance:
		where = "TRUE"
	case identity.CustomerService:
		where, args = "o.creator_id = ?", []any{actor.ID().Int64()}
	case identity.Developer:
		where, args = "o.developer_id = ?", []any{actor.ID().Int64()}
	case identity.Unknown:
		return orders, nil
	default:
		return orders, nil
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderSummaryColumns+`
		FROM orders o
		WHERE `+where+`
		ORDER BY o.created_at DESC, o.id DESC
	`, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		summary, scanErr := scanOrderSummary(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		orders = append(orders, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
