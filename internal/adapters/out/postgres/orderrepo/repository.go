package orderrepo

import (
	"context"
	"errors"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"

	"gorm.io/gorm"
)

// orderColumns are rewritten on every Update. id, creator_id and created_at never change.
var orderColumns = []string{
	"status",
	"is_locked",
	"developer_id",
	"special_cs_rate",
	"special_tech_rate",
	"final_price",
	"initial_budget",
	"customer_info",
	"requirements",
	"updated_at",
	"shipped_at",
}

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a repository bound to db, usually a transaction.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{
		db: db,
	}
}

// Add inserts a new order with its children and identifies the aggregate.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	id, err := kernel.NewID(dto.ID)
	if err != nil {
		return err
	}
	if err = aggregate.Identify(id); err != nil {
		return err
	}

	return nil
}

// Update writes the order row, inserts work logs that have no identity yet and
// replaces the commission snapshot.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if aggregate.ID().IsZero() {
		return errs.NewValueIsRequiredError("order id")
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&OrderDTO{}).Where("id = ?", dto.ID).Select(orderColumns).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	newLogs := make([]WorkLogDTO, 0)
	for _, w := range dto.WorkLogs {
		if w.ID == 0 {
			newLogs = append(newLogs, w)
		}
	}
	if len(newLogs) > 0 {
		if err := db.Create(&newLogs).Error; err != nil {
			return err
		}
	}

	if err := db.Where("order_id = ?", dto.ID).Delete(&CommissionDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Commissions) > 0 {
		if err := db.Create(&dto.Commissions).Error; err != nil {
			return err
		}
	}

	return nil
}

// Get loads an order with work logs and commissions ordered by insertion.
//
// Returns:
//   - the restored aggregate, identified and validated by the domain constructors
//   - errs.ObjectNotFoundError when no order has the id
//   - a domain error when a stored row no longer satisfies the order invariants
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.ID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("WorkLogs", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Commissions", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&dto, "id = ?", id.Int64()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
