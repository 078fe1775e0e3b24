package queries

import (
	"time"

	"orderdesk/internal/core/domain/model/identity"
	"orderdesk/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// UserView is an account as listed to staff. The password hash never leaves storage.
type UserView struct {
	ID                    kernel.ID
	Username              string
	FullName              string
	Role                  identity.Role
	DefaultCommissionRate *kernel.Rate
	IsActive              bool
	CreatedAt             time.Time
}

const userViewColumns = `
	u.id,
	u.username,
	u.full_name,
	u.role,
	u.default_commission_rate,
	u.is_active,
	u.created_at`

func scanUserView(row rowScanner) (UserView, error) {
	var (
		v    UserView
		id   int64
		role int
		rate decimal.NullDecimal
	)
	if err := row.Scan(&id, &v.Username, &v.FullName, &role, &rate, &v.IsActive, &v.CreatedAt); err != nil {
		return UserView{}, err
	}

	var err error
	if v.ID, err = kernel.NewID(id); err != nil {
		return UserView{}, err
	}
	v.Role = identity.Role(role)
	if err = v.Role.Validate(); err != nil {
		return UserView{}, err
	}
	if v.DefaultCommissionRate, err = nullRate(rate); err != nil {
		return UserView{}, err
	}
	return v, nil
}
