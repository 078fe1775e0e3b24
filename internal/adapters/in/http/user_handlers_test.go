package http_test

import (
	"net/http"
	"testing"
	"time"

	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/application/usecases/queries"
	"orderdesk/internal/core/domain/model/identity"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/user"
	"orderdesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func mustUser(t *testing.T, id int64, username string, role identity.Role, active bool) *user.User {
	t.Helper()
	u, err := user.RestoreUser(kernel.MustNewID(id), username, "Dana Ortiz", role, "hash", nil, active)
	require.NoError(t, err)
	return u
}

func TestServer_Users(t *testing.T) {
	t.Run("should list users for any signed in role", func(t *testing.T) {
		f := newFixture(t)
		rate, err := kernel.RateFromString("15")
		require.NoError(t, err)
		f.listUsers.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListUsersQuery) bool {
			return q.Actor().Role() == identity.CustomerService
		})).Return([]queries.UserView{{
			ID:                    kernel.MustNewID(7),
			Username:              "dana",
			FullName:              "Dana Ortiz",
			Role:                  identity.Developer,
			DefaultCommissionRate: &rate,
			IsActive:              true,
			CreatedAt:             time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		}}, nil).Once()

		rec := f.do(http.MethodGet, "/api/v1/users", "cs", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[{
			"id": 7,
			"username": "dana",
			"fullName": "Dana Ortiz",
			"role": "DEVELOPER",
			"defaultCommissionRate": "15",
			"isActive": true,
			"createdAt": "2024-01-02T03:04:05Z"
		}]`, rec.Body.String())
		f.listUsers.AssertExpectations(t)
	})

	t.Run("should keep account management to super admins", func(t *testing.T) {
		requests := []struct {
			method, target, body string
		}{
			{http.MethodPost, "/api/v1/users", `{"username":"dana","password":"secret","role":"DEVELOPER"}`},
			{http.MethodGet, "/api/v1/users/7", ""},
			{http.MethodPut, "/api/v1/users/7", `{"fullName":"Dana"}`},
			{http.MethodDelete, "/api/v1/users/7", ""},
			{http.MethodPatch, "/api/v1/users/7/toggle-status", ""},
		}
		for _, token := range []string{"cs", "dev", "fin"} {
			for _, r := range requests {
				f := newFixture(t)

				rec := f.do(r.method, r.target, token, r.body)

				assert.Equal(t, http.StatusForbidden, rec.Code, "%s %s as %s", r.method, r.target, token)
			}
		}
	})

	t.Run("should create a user", func(t *testing.T) {
		f := newFixture(t)
		f.createUser.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateUserCommand) bool {
			rate := cmd.DefaultCommissionRate()
			return cmd.Username() == "dana" && cmd.Password() == "secret" && cmd.Role() == identity.Developer &&
				rate != nil && rate.String() == "10"
		})).Return(mustUser(t, 7, "dana", identity.Developer, true), nil).Once()

		rec := f.do(http.MethodPost, "/api/v1/users", "admin",
			`{"username":"dana","fullName":"Dana Ortiz","password":"secret","role":"DEVELOPER","defaultCommissionRate":"10"}`)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "/api/v1/users/7", rec.Header().Get("Location"))
		body := decode[map[string]any](t, rec.Body.Bytes())
		assert.Equal(t, "dana", body["username"])
		assert.NotContains(t, rec.Body.String(), "hash")
		f.createUser.AssertExpectations(t)
	})

	t.Run("should answer a taken username with 409", func(t *testing.T) {
		f := newFixture(t)
		f.createUser.On("Handle", mock.Anything, mock.Anything).
			Return(nil, errs.NewObjectAlreadyExistsError("username", "dana")).Once()

		rec := f.do(http.MethodPost, "/api/v1/users", "admin", `{"username":"dana","password":"secret","role":"DEVELOPER"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "object already exists")
	})

	t.Run("should reject short passwords before the handler runs", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/api/v1/users", "admin", `{"username":"dana","password":"123","role":"DEVELOPER"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.createUser.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("should read one user", func(t *testing.T) {
		f := newFixture(t)
		f.getUser.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetUserQuery) bool {
			return q.UserID().Int64() == 7
		})).Return(queries.UserView{ID: kernel.MustNewID(7), Username: "dana", Role: identity.Developer}, nil).Once()

		rec := f.do(http.MethodGet, "/api/v1/users/7", "admin", "")

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode[map[string]any](t, rec.Body.Bytes())
		assert.Equal(t, "DEVELOPER", body["role"])
		assert.NotContains(t, body, "createdAt")
	})

	t.Run("should pass the requested changes on", func(t *testing.T) {
		f := newFixture(t)
		f.updateUser.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.UpdateUserCommand) bool {
			c := cmd.Changes()
			return cmd.UserID().Int64() == 7 &&
				c.Username != nil && *c.Username == "dana.o" &&
				c.Role != nil && *c.Role == identity.Finance &&
				c.IsActive != nil && !*c.IsActive &&
				c.ClearCommissionRate && c.Password == nil
		})).Return(mustUser(t, 7, "dana.o", identity.Finance, false), nil).Once()

		rec := f.do(http.MethodPut, "/api/v1/users/7", "admin",
			`{"username":"dana.o","role":"FINANCE","isActive":false,"clearCommissionRate":true}`)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode[map[string]any](t, rec.Body.Bytes())
		assert.Equal(t, false, body["isActive"])
		f.updateUser.AssertExpectations(t)
	})

	t.Run("should toggle a user", func(t *testing.T) {
		f := newFixture(t)
		f.toggleUserStatus.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ToggleUserStatusCommand) bool {
			return cmd.UserID().Int64() == 7
		})).Return(mustUser(t, 7, "dana", identity.Developer, false), nil).Once()

		rec := f.do(http.MethodPatch, "/api/v1/users/7/toggle-status", "admin", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"isActive":false`)
	})

	t.Run("should delete a user", func(t *testing.T) {
		f := newFixture(t)
		f.deleteUser.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.DeleteUserCommand) bool {
			return cmd.UserID().Int64() == 7
		})).Return(nil).Once()

		rec := f.do(http.MethodDelete, "/api/v1/users/7", "admin", "")

		assert.Equal(t, http.StatusNoContent, rec.Code)
		f.deleteUser.AssertExpectations(t)
	})

	t.Run("should answer unknown users with 404", func(t *testing.T) {
		f := newFixture(t)
		f.deleteUser.On("Handle", mock.Anything, mock.Anything).Return(errs.NewObjectNotFoundError("user", "9")).Once()

		rec := f.do(http.MethodDelete, "/api/v1/users/9", "admin", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
