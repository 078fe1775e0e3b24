package http

import (
	"net/http"

	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// ListNotifications handles GET /api/v1/notifications.
func (s *Server) ListNotifications(c echo.Context) error {
	query, err := queries.NewListNotificationsQuery(actorFrom(c))
	if err != nil {
		return err
	}

	views, err := s.handlers.ListNotifications.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]NotificationResponse, 0, len(views))
	for _, v := range views {
		response = append(response, newNotificationResponse(v))
	}
	return c.JSON(http.StatusOK, response)
}

// MarkNotificationRead handles POST /api/v1/notifications/{notificationId}/read.
func (s *Server) MarkNotificationRead(c echo.Context) error {
	notificationID, err := bindIDParam(c, "notificationId")
	if err != nil {
		return err
	}

	cmd, err := commands.NewMarkNotificationReadCommand(actorFrom(c), notificationID)
	if err != nil {
		return err
	}

	n, err := s.handlers.MarkNotificationRead.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notificationToResponse(n))
}
