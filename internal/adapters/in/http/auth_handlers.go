package http

import (
	"net/http"

	"orderdesk/internal/core/application/usecases/commands"

	"github.com/labstack/echo/v4"
)

// Login handles POST /api/v1/auth/login.
func (s *Server) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	cmd, err := commands.NewLoginCommand(req.Username, req.Password)
	if err != nil {
		return err
	}

	result, err := s.handlers.Login.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newLoginResponse(result))
}
