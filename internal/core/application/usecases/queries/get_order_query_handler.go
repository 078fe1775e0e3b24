package queries

import (
	"context"
	"database/sql"
	"errors"

	"orderdesk/internal/core/domain/model/identity"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/domain/services"
	"orderdesk/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderQueryHandler assembles the order detail view from a read-only connection:
// the order row with creator and developer usernames, its work logs, its commission
// snapshot and the permissions the policy grants the caller.
//
// Example:
//
//	handler := NewGetOrderQueryHandler(db, services.NewOrderPolicy())
//	query, _ := NewGetOrderQuery(actor, kernel.MustNewID(42))
//	detail, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	if detail.Permissions.CanUpdateDetails {
//	    // offer the price form
//	}
type GetOrderQueryHandler struct {
	db     *gorm.DB
	policy services.OrderPolicy
}

func NewGetOrderQueryHandler(db *gorm.DB, policy services.OrderPolicy) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db, policy: policy}
}

// Handle loads the order detail view.
//
// Returns:
//   - errs.ObjectNotFoundError for unknown ids and for orders outside the actor's
//     visibility (see services.OrderPolicy.CanView), so foreign orders stay hidden
//   - any storage error unchanged
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)
	resp, err := h.loadOrder(db, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	o, err := order.RestoreOrder(order.Snapshot{
		ID:                resp.ID,
		Status:            resp.Status,
		IsLocked:          resp.IsLocked,
		CreatorID:         resp.CreatorID,
		DeveloperID:       resp.DeveloperID,
		SpecialCommission: order.NewCommissionOverride(resp.SpecialCSRate, resp.SpecialTechRate),
		FinalPrice:        resp.FinalPrice,
		InitialBudget:     resp.InitialBudget,
		CustomerInfo:      resp.CustomerInfo,
		Requirements:      resp.Requirements,
		CreatedAt:         resp.CreatedAt,
		UpdatedAt:         resp.UpdatedAt,
		ShippedAt:         resp.ShippedAt,
	})
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	if !h.policy.CanView(query.Actor(), o) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	if resp.WorkLogs, err = h.loadWorkLogs(db, query.OrderID()); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.Commissions, err = h.loadCommissions(db, query.OrderID()); err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.Permissions = h.policy.Evaluate(query.Actor(), o)

	return resp, nil
}

func (h GetOrderQueryHandler) loadOrder(db *gorm.DB, id kernel.ID) (GetOrderQueryResponse, error) {
	var (
		resp              GetOrderQueryResponse
		initialBudget     decimal.NullDecimal
		csRate, techRate  decimal.NullDecimal
		shippedAt         sql.NullTime
		creatorUsername   sql.NullString
		developerUsername sql.NullString
	)

	row := db.Raw(`
		SELECT `+orderSummaryColumns+`,
			o.requirements,
			o.initial_budget,
			o.special_cs_rate,
			o.special_tech_rate,
			o.shipped_at,
			c.username,
			d.username
		FROM orders o
		LEFT JOIN users c ON c.id = o.creator_id
		LEFT JOIN users d ON d.id = o.developer_id
		WHERE o.id = ?
	`, id.Int64()).Row()

	summary, err := scanOrderSummary(row,
		&resp.Requirements,
		&initialBudget,
		&csRate,
		&techRate,
		&shippedAt,
		&creatorUsername,
		&developerUsername,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", id.String())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.OrderSummary = summary

	if resp.InitialBudget, err = nullMoney(initialBudget); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.SpecialCSRate, err = nullRate(csRate); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.SpecialTechRate, err = nullRate(techRate); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if shippedAt.Valid {
		resp.ShippedAt = &shippedAt.Time
	}
	resp.CreatorUsername = creatorUsername.String
	resp.DeveloperUsername = developerUsername.String

	return resp, nil
}

func (h GetOrderQueryHandler) loadWorkLogs(db *gorm.DB, orderID kernel.ID) ([]WorkLogView, error) {
	rows, err := db.Raw(`
		SELECT w.id, w.author_id, COALESCE(u.username, ''), w.content, w.created_at
		FROM work_logs w
		LEFT JOIN users u ON u.id = w.author_id
		WHERE w.order_id = ?
		ORDER BY w.created_at, w.id
	`, orderID.Int64()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]WorkLogView, 0)
	for rows.Next() {
		var (
			view         WorkLogView
			id, authorID int64
		)
		if err = rows.Scan(&id, &authorID, &view.AuthorUsername, &view.Content, &view.CreatedAt); err != nil {
			return nil, err
		}
		if view.ID, err = kernel.NewID(id); err != nil {
			return nil, err
		}
		if view.AuthorID, err = kernel.NewID(authorID); err != nil {
			return nil, err
		}
		logs = append(logs, view)
	}

	return logs, rows.Err()
}

func (h GetOrderQueryHandler) loadCommissions(db *gorm.DB, orderID kernel.ID) ([]CommissionView, error) {
	rows, err := db.Raw(`
		SELECT c.user_id, COALESCE(u.username, ''), c.amount, c.role_at_time, c.created_at
		FROM commissions c
		LEFT JOIN users u ON u.id = c.user_id
		WHERE c.order_id = ?
		ORDER BY c.id
	`, orderID.Int64()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	commissions := make([]CommissionView, 0)
	for rows.Next() {
		var (
			view   CommissionView
			userID int64
			amount decimal.Decimal
			role   int
		)
		if err = rows.Scan(&userID, &view.Username, &amount, &role, &view.CreatedAt); err != nil {
			return nil, err
		}
		if view.UserID, err = kernel.NewID(userID); err != nil {
			return nil, err
		}
		if view.Amount, err = kernel.NewMoney(amount); err != nil {
			return nil, err
		}
		view.RoleAtTime = identity.Role(role)
		commissions = append(commissions, view)
	}

	return commissions, rows.Err()
}
