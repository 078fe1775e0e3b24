package http

import (
	"net/http"

	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/application/usecases/queries"
	"orderdesk/internal/core/domain/model/identity"

	"github.com/labstack/echo/v4"
)

// ListUsers handles GET /api/v1/users. The result depends on the caller's role.
func (s *Server) ListUsers(c echo.Context) error {
	query, err := queries.NewListUsersQuery(actorFrom(c))
	if err != nil {
		return err
	}

	users, err := s.handlers.ListUsers.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]UserAccountResponse, 0, len(users))
	for _, u := range users {
		response = append(response, newUserViewResponse(u))
	}
	return c.JSON(http.StatusOK, response)
}

// CreateUser handles POST /api/v1/users.
func (s *Server) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	role, err := identity.ParseRole(req.Role)
	if err != nil {
		return err
	}
	rate, err := optionalRate(req.DefaultCommissionRate)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateUserCommand(actorFrom(c), req.Username, req.FullName, role, req.Password, rate)
	if err != nil {
		return err
	}

	created, err := s.handlers.CreateUser.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderLocation, "/api/v1/users/"+created.ID().String())
	return c.JSON(http.StatusCreated, newUserAccountResponse(created))
}

// GetUser handles GET /api/v1/users/{userId}.
func (s *Server) GetUser(c echo.Context) error {
	userID, err := bindIDParam(c, "userId")
	if err != nil {
		return err
	}

	query, err := queries.NewGetUserQuery(actorFrom(c), userID)
	if err != nil {
		return err
	}

	view, err := s.handlers.GetUser.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newUserViewResponse(view))
}

// UpdateUser handles PUT /api/v1/users/{userId}.
func (s *Server) UpdateUser(c echo.Context) error {
	userID, err := bindIDParam(c, "userId")
	if err != nil {
		return err
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	changes := commands.UserChanges{
		Username:            req.Username,
		FullName:            req.FullName,
		Password:            req.Password,
		ClearCommissionRate: req.ClearCommissionRate,
		IsActive:            req.IsActive,
	}
	if req.Role != nil {
		role, err := identity.ParseRole(*req.Role)
		if err != nil {
			return err
		}
		changes.Role = &role
	}
	if changes.DefaultCommissionRate, err = optionalRate(req.DefaultCommissionRate); err != nil {
		return err
	}

	cmd, err := commands.NewUpdateUserCommand(actorFrom(c), userID, changes)
	if err != nil {
		return err
	}

	updated, err := s.handlers.UpdateUser.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newUserAccountResponse(updated))
}

// ToggleUserStatus handles PATCH /api/v1/users/{userId}/toggle-status.
func (s *Server) ToggleUserStatus(c echo.Context) error {
	userID, err := bindIDParam(c, "userId")
	if err != nil {
		return err
	}

	cmd, err := commands.NewToggleUserStatusCommand(actorFrom(c), userID)
	if err != nil {
		return err
	}

	toggled, err := s.handlers.ToggleUserStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newUserAccountResponse(toggled))
}

// DeleteUser handles DELETE /api/v1/users/{userId}.
func (s *Server) DeleteUser(c echo.Context) error {
	userID, err := bindIDParam(c, "userId")
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteUserCommand(actorFrom(c), userID)
	if err != nil {
		return err
	}

	if err := s.handlers.DeleteUser.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
