package queries

import (
	"context"
	"database/sql"
	"errors"

	"orderdesk/internal/core/domain/model/identity"
	"orderdesk/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetUserQueryHandler reads a single account.
//
// Example:
//
//	handler := NewGetUserQueryHandler(db)
//	query, _ := NewGetUserQuery(admin, kernel.MustNewID(4))
//	view, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // no such account
//	}
type GetUserQueryHandler struct {
	db *gorm.DB
}

func NewGetUserQueryHandler(db *gorm.DB) GetUserQueryHandler {
	return GetUserQueryHandler{db: db}
}

// Handle returns the account view.
//
// Returns:
//   - errs.PermissionDeniedError unless the actor is a super admin
//   - errs.ObjectNotFoundError when no account has the id
func (h GetUserQueryHandler) Handle(ctx context.Context, query GetUserQuery) (UserView, error) {
	if err := query.Validate(); err != nil {
		return UserView{}, err
	}
	if query.Actor().Role() != identity.SuperAdmin {
		return UserView{}, errs.NewPermissionDeniedError("GET_USER", "only a super admin reads accounts")
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT `+userViewColumns+`
		FROM users u
		WHERE u.id = ?
	`, query.UserID().Int64()).Row()

	v, err := scanUserView(row)
	if errors.Is(err, sql.ErrNoRows) {
		return UserView{}, errs.NewObjectNotFoundErrorWithCause("user", query.UserID().String(), err)
	}
	if err != nil {
		return UserView{}, err
	}
	return v, nil
}
