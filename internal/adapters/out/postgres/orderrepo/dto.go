// Package orderrepo maps order aggregates, with their work logs and commission
// snapshots, to the orders, work_logs and commissions tables.
package orderrepo

import (
	"errors"
	"time"

	"orderdesk/internal/core/domain/model/identity"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row. Status and role columns hold the domain enum values.
type OrderDTO struct {
	ID              int64               `gorm:"primaryKey;autoIncrement"`
	Status          int                 `gorm:"type:smallint;not null;index"`
	IsLocked        bool                `gorm:"not null;default:false"`
	CreatorID       int64               `gorm:"not null;index"`
	DeveloperID     *int64              `gorm:"index"`
	SpecialCSRate   decimal.NullDecimal `gorm:"column:special_cs_rate;type:numeric(5,2)"`
	SpecialTechRate decimal.NullDecimal `gorm:"column:special_tech_rate;type:numeric(5,2)"`
	FinalPrice      decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	InitialBudget   decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	CustomerInfo    string              `gorm:"type:text;not null"`
	Requirements    string              `gorm:"type:text;not null;default:''"`
	CreatedAt       time.Time           `gorm:"not null;index"`
	UpdatedAt       time.Time           `gorm:"not null;autoUpdateTime:false"`
	ShippedAt       *time.Time
	WorkLogs        []WorkLogDTO    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Commissions     []CommissionDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// WorkLogDTO is an append-only progress note.
type WorkLogDTO struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	OrderID   int64     `gorm:"not null;index"`
	AuthorID  int64     `gorm:"not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (WorkLogDTO) TableName() string {
	return "work_logs"
}

// CommissionDTO is one row of the commission snapshot taken at verification.
type CommissionDTO struct {
	ID         int64           `gorm:"primaryKey;autoIncrement"`
	OrderID    int64           `gorm:"not null;index"`
	UserID     int64           `gorm:"not null;index"`
	Amount     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	RoleAtTime int             `gorm:"type:smallint;not null"`
	CreatedAt  time.Time       `gorm:"not null"`
}

func (CommissionDTO) TableName() string {
	return "commissions"
}

func fromDomain(o *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:           o.ID().Int64(),
		Status:       int(o.Status()),
		IsLocked:     o.IsLocked(),
		CreatorID:    o.CreatorID().Int64(),
		CustomerInfo: o.CustomerInfo(),
		Requirements: o.Requirements(),
		CreatedAt:    o.CreatedAt(),
		UpdatedAt:    o.UpdatedAt(),
	}

	if id, ok := o.DeveloperID(); ok {
		raw := id.Int64()
		dto.DeveloperID = &raw
	}
	if rate, ok := o.SpecialCommission().CSRate(); ok {
		dto.SpecialCSRate = decimal.NewNullDecimal(rate.Percent())
	}
	if rate, ok := o.SpecialCommission().TechRate(); ok {
		dto.SpecialTechRate = decimal.NewNullDecimal(rate.Percent())
	}
	if price, ok := o.FinalPrice(); ok {
		dto.FinalPrice = decimal.NewNullDecimal(price.Amount())
	}
	if budget, ok := o.InitialBudget(); ok {
		dto.InitialBudget = decimal.NewNullDecimal(budget.Amount())
	}
	if at, ok := o.ShippedAt(); ok {
		dto.ShippedAt = &at
	}

	for _, w := range o.WorkLogs() {
		dto.WorkLogs = append(dto.WorkLogs, WorkLogDTO{
			ID:        w.ID().Int64(),
			OrderID:   dto.ID,
			AuthorID:  w.AuthorID().Int64(),
			Content:   w.Content(),
			CreatedAt: w.CreatedAt(),
		})
	}
	for _, c := range o.Commissions() {
		dto.Commissions = append(dto.Commissions, CommissionDTO{
			ID:         c.ID().Int64(),
			OrderID:    dto.ID,
			UserID:     c.UserID().Int64(),
			Amount:     c.Amount().Amount(),
			RoleAtTime: int(c.RoleAtTime()),
			CreatedAt:  c.CreatedAt(),
		})
	}

	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, idErr := kernel.NewID(dto.ID)
	creatorID, creatorErr := kernel.NewID(dto.CreatorID)
	developerID, developerErr := optionalID(dto.DeveloperID)
	csRate, csErr := optionalRate(dto.SpecialCSRate)
	techRate, techErr := optionalRate(dto.SpecialTechRate)
	finalPrice, priceErr := optionalMoney(dto.FinalPrice)
	budget, budgetErr := optionalMoney(dto.InitialBudget)
	if err := errors.Join(idErr, creatorErr, developerErr, csErr, techErr, priceErr, budgetErr); err != nil {
		return nil, err
	}

	workLogs := make([]order.WorkLog, 0, len(dto.WorkLogs))
	for _, w := range dto.WorkLogs {
		log, err := workLogToDomain(w)
		if err != nil {
			return nil, err
		}
		workLogs = append(workLogs, log)
	}

	commissions := make([]order.Commission, 0, len(dto.Commissions))
	for _, c := range dto.Commissions {
		commission, err := commissionToDomain(c)
		if err != nil {
			return nil, err
		}
		commissions = append(commissions, commission)
	}

	return order.RestoreOrder(order.Snapshot{
		ID:                id,
		Status:            order.Status(dto.Status),
		IsLocked:          dto.IsLocked,
		CreatorID:         creatorID,
		DeveloperID:       developerID,
		SpecialCommission: order.NewCommissionOverride(csRate, techRate),
		FinalPrice:        finalPrice,
		InitialBudget:     budget,
		CustomerInfo:      dto.CustomerInfo,
		Requirements:      dto.Requirements,
		CreatedAt:         dto.CreatedAt,
		UpdatedAt:         dto.UpdatedAt,
		ShippedAt:         dto.ShippedAt,
		WorkLogs:          workLogs,
		Commissions:       commissions,
	})
}

func workLogToDomain(dto WorkLogDTO) (order.WorkLog, error) {
	id, idErr := kernel.NewID(dto.ID)
	authorID, authorErr := kernel.NewID(dto.AuthorID)
	if err := errors.Join(idErr, authorErr); err != nil {
		return order.WorkLog{}, err
	}
	return order.RestoreWorkLog(id, authorID, dto.Content, dto.CreatedAt)
}

func commissionToDomain(dto CommissionDTO) (order.Commission, error) {
	id, idErr := kernel.NewID(dto.ID)
	userID, userErr := kernel.NewID(dto.UserID)
	amount, amountErr := kernel.NewMoney(dto.Amount)
	if err := errors.Join(idErr, userErr, amountErr); err != nil {
		return order.Commission{}, err
	}
	return order.RestoreCommission(id, userID, amount, identity.Role(dto.RoleAtTime), dto.CreatedAt)
}

func optionalID(raw *int64) (*kernel.ID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.NewID(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func optionalRate(raw decimal.NullDecimal) (*kernel.Rate, error) {
	if !raw.Valid {
		return nil, nil
	}
	rate, err := kernel.NewRate(raw.Decimal)
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

func optionalMoney(raw decimal.NullDecimal) (*kernel.Money, error) {
	if !raw.Valid {
		return nil, nil
	}
	money, err := kernel.NewMoney(raw.Decimal)
	if err != nil {
		return nil, err
	}
	return &money, nil
}
