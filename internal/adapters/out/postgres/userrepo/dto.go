// Package userrepo persists staff accounts in the users table.
package userrepo

import (
	"time"

	"orderdesk/internal/core/domain/model/identity"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/user"

	"github.com/shopspring/decimal"
)

type UserDTO struct {
	ID                    int64               `gorm:"primaryKey;autoIncrement"`
	Username              string              `gorm:"type:varchar(80);not null;uniqueIndex"`
	FullName              string              `gorm:"type:varchar(120);not null;default:''"`
	Role                  int                 `gorm:"type:smallint;not null;index"`
	PasswordHash          string              `gorm:"type:varchar(255);not null"`
	DefaultCommissionRate decimal.NullDecimal `gorm:"type:numeric(5,2)"`
	IsActive              bool                `gorm:"not null"`
	CreatedAt             time.Time
}

func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	dto := UserDTO{
		ID:           u.ID().Int64(),
		Username:     u.Username(),
		FullName:     u.FullName(),
		Role:         int(u.Role()),
		PasswordHash: u.PasswordHash(),
		IsActive:     u.IsActive(),
	}
	if rate, ok := u.DefaultCommissionRate(); ok {
		dto.DefaultCommissionRate = decimal.NewNullDecimal(rate.Percent())
	}
	return dto
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.NewID(dto.ID)
	if err != nil {
		return nil, err
	}

	var rate *kernel.Rate
	if dto.DefaultCommissionRate.Valid {
		r, rateErr := kernel.NewRate(dto.DefaultCommissionRate.Decimal)
		if rateErr != nil {
			return nil, rateErr
		}
		rate = &r
	}

	return user.RestoreUser(id, dto.Username, dto.FullName, identity.Role(dto.Role), dto.PasswordHash, rate, dto.IsActive)
}
