package http

import (
	"errors"
	"net/http"

	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// handleError is the echo error handler. Domain errors keep their message; anything
// unclassified is logged and answered with a generic 500.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, message := s.classify(err)
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "Request failed",
			"error", err,
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
		)
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, Error{Code: status, Message: message})
	}
	if writeErr != nil {
		s.logger.ErrorContext(c.Request().Context(), "Failed to write error response", "error", writeErr)
	}
}

func (s *Server) classify(err error) (int, string) {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if msg, ok := httpErr.Message.(string); ok {
			return httpErr.Code, msg
		}
		return httpErr.Code, http.StatusText(httpErr.Code)
	}

	var denied *errs.PermissionDeniedError
	if errors.As(err, &denied) {
		s.metrics.ObservePermissionDenied(denied.Action)
		return http.StatusForbidden, err.Error()
	}

	var invalidRequest *RequestValidationError
	switch {
	case errors.As(err, &invalidRequest):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, commands.ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, commands.ErrUserIsDisabled):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, errs.ErrPermissionDenied):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, errs.ErrIllegalTransition),
		errors.Is(err, errs.ErrObjectAlreadyExists):
		return http.StatusConflict, err.Error()
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, err.Error()
	}
	return http.StatusInternalServerError, "internal server error"
}
