package queries

import (
	"context"

	"orderdesk/internal/core/domain/model/identity"

	"gorm.io/gorm"
)

type ListUsersQueryHandler struct {
	db *gorm.DB
}

func NewListUsersQueryHandler(db *gorm.DB) ListUsersQueryHandler {
	return ListUsersQueryHandler{db: db}
}

// Handle returns the visible accounts ordered by id. Developers and finance get an
// empty slice rather than an error.
func (h ListUsersQueryHandler) Handle(ctx context.Context, query ListUsersQuery) ([]UserView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	users := make([]UserView, 0)

	var (
		where string
		args  []any
	)
	switch query.Actor().Role() {
	case identity.SuperAdmin:
		where = "TRUE"
	case identity.CustomerService:
		where, args = "u.role = ? AND u.is_active", []any{int(identity.Developer)}
	case identity.Developer, identity.Finance, identity.Unknown:
		return users, nil
	default:
		return users, nil
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+userViewColumns+`
		FROM users u
		WHERE `+where+`
		ORDER BY u.id
	`, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		v, scanErr := scanUserView(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		users = append(users, v)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}
