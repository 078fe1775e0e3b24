package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/application/usecases/queries"
	"orderdesk/internal/core/domain/model/identity"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/notification"
	"orderdesk/internal/core/domain/model/user"
	"orderdesk/internal/core/domain/services"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/obs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type loginHandler interface {
	Handle(ctx context.Context, cmd commands.LoginCommand) (commands.LoginResult, error)
}

type createOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) (kernel.ID, error)
}

type transitionOrderHandler interface {
	Handle(ctx context.Context, cmd commands.TransitionOrderCommand) (commands.TransitionOrderResult, error)
}

type updateOrderDetailsHandler interface {
	Handle(ctx context.Context, cmd commands.UpdateOrderDetailsCommand) error
}

type setSpecialCommissionHandler interface {
	Handle(ctx context.Context, cmd commands.SetSpecialCommissionCommand) error
}

type addWorkLogHandler interface {
	Handle(ctx context.Context, cmd commands.AddWorkLogCommand) error
}

type markNotificationReadHandler interface {
	Handle(ctx context.Context, cmd commands.MarkNotificationReadCommand) (*notification.Notification, error)
}

type createUserHandler interface {
	Handle(ctx context.Context, cmd commands.CreateUserCommand) (*user.User, error)
}

type updateUserHandler interface {
	Handle(ctx context.Context, cmd commands.UpdateUserCommand) (*user.User, error)
}

type toggleUserStatusHandler interface {
	Handle(ctx context.Context, cmd commands.ToggleUserStatusCommand) (*user.User, error)
}

type deleteUserHandler interface {
	Handle(ctx context.Context, cmd commands.DeleteUserCommand) error
}

type getOrdersForActorHandler interface {
	Handle(ctx context.Context, query queries.GetOrdersForActorQuery) ([]queries.OrderSummary, error)
}

type getOrderHandler interface {
	Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error)
}

type listNotificationsHandler interface {
	Handle(ctx context.Context, query queries.ListNotificationsQuery) ([]queries.NotificationView, error)
}

type getStatusDistributionHandler interface {
	Handle(
		ctx context.Context,
		query queries.GetStatusDistributionQuery,
	) (queries.GetStatusDistributionQueryResponse, error)
}

type getPersonalStatsHandler interface {
	Handle(ctx context.Context, query queries.GetPersonalStatsQuery) (queries.GetPersonalStatsQueryResponse, error)
}

type listUsersHandler interface {
	Handle(ctx context.Context, query queries.ListUsersQuery) ([]queries.UserView, error)
}

type getUserHandler interface {
	Handle(ctx context.Context, query queries.GetUserQuery) (queries.UserView, error)
}

// TokenParser turns a bearer token into the actor it was issued for.
type TokenParser interface {
	Parse(token string) (*identity.Actor, error)
}

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	Login                loginHandler
	CreateOrder          createOrderHandler
	TransitionOrder      transitionOrderHandler
	UpdateOrderDetails   updateOrderDetailsHandler
	SetSpecialCommission setSpecialCommissionHandler
	AddWorkLog           addWorkLogHandler
	MarkNotificationRead markNotificationReadHandler
	CreateUser           createUserHandler
	UpdateUser           updateUserHandler
	ToggleUserStatus     toggleUserStatusHandler
	DeleteUser           deleteUserHandler

	GetOrdersForActor     getOrdersForActorHandler
	GetOrder              getOrderHandler
	ListNotifications     listNotificationsHandler
	GetStatusDistribution getStatusDistributionHandler
	GetPersonalStats      getPersonalStatsHandler
	ListUsers             listUsersHandler
	GetUser               getUserHandler
}

// Server maps HTTP requests onto application use cases.
// Every route under /api/v1 passes the route guard before its handler runs.
type Server struct {
	handlers  Handlers
	tokens    TokenParser
	guard     services.RouteGuard
	validator *requestValidator
	docs      echo.HandlerFunc
	logins    *clientLimiter
	metrics   *obs.Metrics
	clock     ports.Clock
	logger    *slog.Logger

	echo *echo.Echo
}

func NewServer(
	ctx context.Context,
	handlers Handlers,
	tokens TokenParser,
	metrics *obs.Metrics,
	clock ports.Clock,
	logger *slog.Logger,
) (*Server, error) {
	if tokens == nil {
		return nil, errors.New("token parser is required")
	}
	if metrics == nil {
		metrics = obs.NewMetrics()
	}
	if clock == nil {
		clock = ports.ClockFunc(time.Now)
	}

	doc, err := loadOpenAPIDocument(ctx)
	if err != nil {
		return nil, err
	}
	validator, err := newRequestValidator(doc)
	if err != nil {
		return nil, err
	}
	docs, err := swaggerHandler(doc)
	if err != nil {
		return nil, err
	}

	s := &Server{
		handlers:  handlers,
		tokens:    tokens,
		guard:     services.NewRouteGuard(),
		validator: validator,
		docs:      docs,
		logins:    newClientLimiter(loginRefill, loginBurst, clock.Now),
		metrics:   metrics,
		clock:     clock,
		logger:    logger.With("component", "http_server"),
	}
	s.echo = s.routes()
	return s, nil
}

// Echo returns the configured router, ready to Start or to serve tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

func (s *Server) routes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.handleError

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(s.observe)
	e.Use(middleware.Recover())
	e.Use(s.authenticate)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))
	e.GET("/openapi.yaml", serveOpenAPIDocument)
	e.GET("/swagger/*", s.docs)

	var (
		loginPage     = services.Resource{LoginPage: true}
		authenticated = services.Resource{RequiresAuth: true}
	)
	only := func(roles ...identity.Role) services.Resource {
		return services.Resource{RequiresAuth: true, RequiredRoles: roles}
	}

	api := e.Group("/api/v1")
	api.POST("/auth/login", s.Login, s.guardRoute(loginPage), s.logins.middleware, s.validator.middleware)

	api.GET("/orders", s.ListOrders, s.guardRoute(authenticated), s.validator.middleware)
	api.POST("/orders", s.CreateOrder, s.guardRoute(only(identity.CustomerService)), s.validator.middleware)
	api.GET("/orders/:orderId", s.GetOrder, s.guardRoute(authenticated), s.validator.middleware)
	api.PATCH("/orders/:orderId", s.UpdateOrderDetails,
		s.guardRoute(only(identity.CustomerService)), s.validator.middleware)
	api.POST("/orders/:orderId/transitions", s.TransitionOrder, s.guardRoute(authenticated), s.validator.middleware)
	api.PUT("/orders/:orderId/special-commission", s.SetSpecialCommission,
		s.guardRoute(only(identity.SuperAdmin)), s.validator.middleware)
	api.POST("/orders/:orderId/work-logs", s.AddWorkLog, s.guardRoute(only(identity.Developer)), s.validator.middleware)

	api.GET("/notifications", s.ListNotifications, s.guardRoute(authenticated), s.validator.middleware)
	api.POST("/notifications/:notificationId/read", s.MarkNotificationRead,
		s.guardRoute(authenticated), s.validator.middleware)

	api.GET("/users", s.ListUsers, s.guardRoute(authenticated), s.validator.middleware)
	api.POST("/users", s.CreateUser, s.guardRoute(only(identity.SuperAdmin)), s.validator.middleware)
	api.GET("/users/:userId", s.GetUser, s.guardRoute(only(identity.SuperAdmin)), s.validator.middleware)
	api.PUT("/users/:userId", s.UpdateUser, s.guardRoute(only(identity.SuperAdmin)), s.validator.middleware)
	api.DELETE("/users/:userId", s.DeleteUser, s.guardRoute(only(identity.SuperAdmin)), s.validator.middleware)
	api.PATCH("/users/:userId/toggle-status", s.ToggleUserStatus,
		s.guardRoute(only(identity.SuperAdmin)), s.validator.middleware)

	api.GET("/dashboard/status-distribution", s.GetStatusDistribution,
		s.guardRoute(only(identity.SuperAdmin, identity.Finance)), s.validator.middleware)
	api.GET("/dashboard/me", s.GetPersonalStats,
		s.guardRoute(only(identity.CustomerService, identity.Developer)), s.validator.middleware)

	return e
}
