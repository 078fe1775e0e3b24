package http_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apihttp "orderdesk/internal/adapters/in/http"
	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/application/usecases/queries"
	"orderdesk/internal/core/domain/model/identity"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/notification"
	"orderdesk/internal/core/domain/model/user"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/obs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 7, 15, 10, 0, 0, 0, time.UTC)

// MockHandler stands in for any use case returning a value and an error.
type MockHandler[Req, Res any] struct {
	mock.Mock
}

func (m *MockHandler[Req, Res]) Handle(ctx context.Context, req Req) (Res, error) {
	args := m.Called(ctx, req)
	var zero Res
	if v := args.Get(0); v != nil {
		return v.(Res), args.Error(1)
	}
	return zero, args.Error(1)
}

// MockCommandHandler stands in for use cases returning only an error.
type MockCommandHandler[Req any] struct {
	mock.Mock
}

func (m *MockCommandHandler[Req]) Handle(ctx context.Context, req Req) error {
	return m.Called(ctx, req).Error(0)
}

type fakeTokens map[string]*identity.Actor

func (f fakeTokens) Parse(token string) (*identity.Actor, error) {
	if actor, ok := f[token]; ok {
		return actor, nil
	}
	return nil, errors.New("invalid token")
}

type fixture struct {
	server  *apihttp.Server
	metrics *obs.Metrics

	login                *MockHandler[commands.LoginCommand, commands.LoginResult]
	createOrder          *MockHandler[commands.CreateOrderCommand, kernel.ID]
	transitionOrder      *MockHandler[commands.TransitionOrderCommand, commands.TransitionOrderResult]
	updateOrderDetails   *MockCommandHandler[commands.UpdateOrderDetailsCommand]
	setSpecialCommission *MockCommandHandler[commands.SetSpecialCommissionCommand]
	addWorkLog           *MockCommandHandler[commands.AddWorkLogCommand]
	markNotificationRead *MockHandler[commands.MarkNotificationReadCommand, *notification.Notification]
	createUser           *MockHandler[commands.CreateUserCommand, *user.User]
	updateUser           *MockHandler[commands.UpdateUserCommand, *user.User]
	toggleUserStatus     *MockHandler[commands.ToggleUserStatusCommand, *user.User]
	deleteUser           *MockCommandHandler[commands.DeleteUserCommand]

	getOrdersForActor     *MockHandler[queries.GetOrdersForActorQuery, []queries.OrderSummary]
	getOrder              *MockHandler[queries.GetOrderQuery, queries.GetOrderQueryResponse]
	listNotifications     *MockHandler[queries.ListNotificationsQuery, []queries.NotificationView]
	getStatusDistribution *MockHandler[queries.GetStatusDistributionQuery, queries.GetStatusDistributionQueryResponse]
	getPersonalStats      *MockHandler[queries.GetPersonalStatsQuery, queries.GetPersonalStatsQueryResponse]
	listUsers             *MockHandler[queries.ListUsersQuery, []queries.UserView]
	getUser               *MockHandler[queries.GetUserQuery, queries.UserView]
}

func mustActor(t *testing.T, id int64, role identity.Role) *identity.Actor {
	t.Helper()
	actor, err := identity.NewActor(kernel.MustNewID(id), role)
	require.NoError(t, err)
	return actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		metrics:               obs.NewMetrics(),
		login:                 new(MockHandler[commands.LoginCommand, commands.LoginResult]),
		createOrder:           new(MockHandler[commands.CreateOrderCommand, kernel.ID]),
		transitionOrder:       new(MockHandler[commands.TransitionOrderCommand, commands.TransitionOrderResult]),
		updateOrderDetails:    new(MockCommandHandler[commands.UpdateOrderDetailsCommand]),
		setSpecialCommission:  new(MockCommandHandler[commands.SetSpecialCommissionCommand]),
		addWorkLog:            new(MockCommandHandler[commands.AddWorkLogCommand]),
		markNotificationRead:  new(MockHandler[commands.MarkNotificationReadCommand, *notification.Notification]),
		getOrdersForActor:     new(MockHandler[queries.GetOrdersForActorQuery, []queries.OrderSummary]),
		getOrder:              new(MockHandler[queries.GetOrderQuery, queries.GetOrderQueryResponse]),
		listNotifications:     new(MockHandler[queries.ListNotificationsQuery, []queries.NotificationView]),
		getStatusDistribution: new(MockHandler[queries.GetStatusDistributionQuery, queries.GetStatusDistributionQueryResponse]),
		getPersonalStats:      new(MockHandler[queries.GetPersonalStatsQuery, queries.GetPersonalStatsQueryResponse]),
		createUser:            new(MockHandler[commands.CreateUserCommand, *user.User]),
		updateUser:            new(MockHandler[commands.UpdateUserCommand, *user.User]),
		toggleUserStatus:      new(MockHandler[commands.ToggleUserStatusCommand, *user.User]),
		deleteUser:            new(MockCommandHandler[commands.DeleteUserCommand]),
		listUsers:             new(MockHandler[queries.ListUsersQuery, []queries.UserView]),
		getUser:               new(MockHandler[queries.GetUserQuery, queries.UserView]),
	}

	tokens := fakeTokens{
		"admin": mustActor(t, 1, identity.SuperAdmin),
		"cs":    mustActor(t, 2, identity.CustomerService),
		"dev":   mustActor(t, 3, identity.Developer),
		"fin":   mustActor(t, 4, identity.Finance),
	}

	server, err := apihttp.NewServer(
		t.Context(),
		apihttp.Handlers{
			Login:                 f.login,
			CreateOrder:           f.createOrder,
			TransitionOrder:       f.transitionOrder,
			UpdateOrderDetails:    f.updateOrderDetails,
			SetSpecialCommission:  f.setSpecialCommission,
			AddWorkLog:            f.addWorkLog,
			MarkNotificationRead:  f.markNotificationRead,
			GetOrdersForActor:     f.getOrdersForActor,
			GetOrder:              f.getOrder,
			ListNotifications:     f.listNotifications,
			GetStatusDistribution: f.getStatusDistribution,
			GetPersonalStats:      f.getPersonalStats,
			CreateUser:            f.createUser,
			UpdateUser:            f.updateUser,
			ToggleUserStatus:      f.toggleUserStatus,
			DeleteUser:            f.deleteUser,
			ListUsers:             f.listUsers,
			GetUser:               f.getUser,
		},
		tokens,
		f.metrics,
		ports.ClockFunc(func() time.Time { return fixedNow }),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	require.NoError(t, err)
	f.server = server
	return f
}

// do sends a request with an optional bearer token and raw JSON body.
func (f *fixture) do(method, target, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.server.Echo().ServeHTTP(rec, req)
	return rec
}

func (f *fixture) scrape() string {
	rec := f.do(http.MethodGet, "/metrics", "", "")
	return rec.Body.String()
}
