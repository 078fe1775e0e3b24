package http

import (
	"net/http"
	"strings"
	"time"

	"orderdesk/internal/core/domain/model/identity"
	"orderdesk/internal/core/domain/services"

	"github.com/labstack/echo/v4"
)

const actorContextKey = "orderdesk.actor"

// RedirectResponse tells the client where to go after a guard refusal.
type RedirectResponse struct {
	Redirect string `json:"redirect"`
	Resume   string `json:"resume,omitempty"`
}

// observe logs and measures every request. Errors are rendered here so the recorded
// status is the one the client receives.
func (s *Server) observe(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := s.clock.Now()
		s.metrics.RequestStarted()
		defer s.metrics.RequestFinished()

		if err := next(c); err != nil {
			c.Error(err)
		}

		elapsed := s.clock.Now().Sub(start)
		req := c.Request()
		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		status := c.Response().Status
		s.metrics.ObserveRequest(req.Method, route, status, elapsed)
		s.logger.InfoContext(req.Context(), "HTTP request",
			"method", req.Method,
			"route", route,
			"path", req.URL.Path,
			"status", status,
			"duration", elapsed.Round(time.Microsecond).String(),
			"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
		)
		return nil
	}
}

// authenticate attaches the actor of a valid bearer token. Requests without one, or
// with an invalid one, continue anonymously and are stopped by the guard if needed.
func (s *Server) authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c.Request())
		if !ok {
			return next(c)
		}

		actor, err := s.tokens.Parse(token)
		if err != nil {
			s.logger.DebugContext(c.Request().Context(), "Rejected session token", "error", err)
			return next(c)
		}
		c.Set(actorContextKey, actor)
		return next(c)
	}
}

// guardRoute applies the route guard to one route.
func (s *Server) guardRoute(resource services.Resource) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			decision := s.guard.Allow(actorFrom(c), resource, c.Request().URL.RequestURI())
			switch decision.Outcome {
			case services.Allowed:
				return next(c)
			case services.RedirectLogin:
				return c.JSON(http.StatusUnauthorized, RedirectResponse{Redirect: "/login", Resume: decision.ResumePath})
			case services.RedirectHome:
				s.metrics.ObservePermissionDenied("ROUTE " + c.Path())
				return c.JSON(http.StatusForbidden, RedirectResponse{Redirect: "/"})
			}
			return echo.ErrForbidden
		}
	}
}

func actorFrom(c echo.Context) *identity.Actor {
	actor, _ := c.Get(actorContextKey).(*identity.Actor)
	return actor
}

func bearerToken(req *http.Request) (string, bool) {
	header := req.Header.Get(echo.HeaderAuthorization)
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
