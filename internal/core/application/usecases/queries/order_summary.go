package queries

import (
	"database/sql"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderSummary is one row of an order list.
type OrderSummary struct {
	ID           kernel.ID
	Reference    string
	Status       order.Status
	IsLocked     bool
	CreatorID    kernel.ID
	DeveloperID  *kernel.ID
	FinalPrice   *kernel.Money
	CustomerInfo string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const orderSummaryColumns = `
	o.id,
	o.status,
	o.is_locked,
	o.creator_id,
	o.developer_id,
	o.final_price,
	o.customer_info,
	o.created_at,
	o.updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// scanOrderSummary reads orderSummaryColumns followed by extra destinations.
func scanOrderSummary(row rowScanner, extra ...any) (OrderSummary, error) {
	var (
		s           OrderSummary
		id          int64
		status      int
		creatorID   int64
		developerID sql.NullInt64
		finalPrice  decimal.NullDecimal
	)

	dest := append([]any{
		&id,
		&status,
		&s.IsLocked,
		&creatorID,
		&developerID,
		&finalPrice,
		&s.CustomerInfo,
		&s.CreatedAt,
		&s.UpdatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return OrderSummary{}, err
	}

	var err error
	if s.ID, err = kernel.NewID(id); err != nil {
		return OrderSummary{}, err
	}
	if s.CreatorID, err = kernel.NewID(creatorID); err != nil {
		return OrderSummary{}, err
	}
	s.Status = order.Status(status)
	if err = s.Status.Validate(); err != nil {
		return OrderSummary{}, err
	}
	s.Reference = order.FormatReference(s.ID, s.CreatedAt)

	if developerID.Valid {
		dev, devErr := kernel.NewID(developerID.Int64)
		if devErr != nil {
			return OrderSummary{}, devErr
		}
		s.DeveloperID = &dev
	}
	if s.FinalPrice, err = nullMoney(finalPrice); err != nil {
		return OrderSummary{}, err
	}

	return s, nil
}

func nullMoney(d decimal.NullDecimal) (*kernel.Money, error) {
	if !d.Valid {
		return nil, nil
	}
	m, err := kernel.NewMoney(d.Decimal)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func nullRate(d decimal.NullDecimal) (*kernel.Rate, error) {
	if !d.Valid {
		return nil, nil
	}
	r, err := kernel.NewRate(d.Decimal)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
