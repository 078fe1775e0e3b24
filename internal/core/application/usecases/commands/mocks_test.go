package commands_test

import (
	"context"
	"testing"
	"time"

	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/domain/model/identity"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/notification"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/domain/model/user"
	"orderdesk/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 7, 15, 10, 0, 0, 0, time.UTC)

var clock = ports.ClockFunc(func() time.Time { return fixedNow })

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id kernel.ID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id kernel.ID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) ListActiveByRole(ctx context.Context, role identity.Role) ([]*user.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*user.User), args.Error(1)
}

type MockNotificationRepository struct{ mock.Mock }

func (m *MockNotificationRepository) Add(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) Update(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) Get(ctx context.Context, id kernel.ID) (*notification.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Notification), args.Error(1)
}

// MockUoW implements every unit of work flavour used by the handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) UserRepository() ports.UserRepository {
	args := m.Called()
	return args.Get(0).(ports.UserRepository)
}

func (m *MockUoW) NotificationRepository() ports.NotificationRepository {
	args := m.Called()
	return args.Get(0).(ports.NotificationRepository)
}

type orderUoWFactory struct{ uow *MockUoW }

func (f orderUoWFactory) Create() commands.OrderUoW { return f.uow }

type notificationUoWFactory struct{ uow *MockUoW }

func (f notificationUoWFactory) Create() commands.NotificationUoW { return f.uow }

type userUoWFactory struct{ uow *MockUoW }

func (f userUoWFactory) Create() commands.UserUoW { return f.uow }

type MockPasswordHasher struct{ mock.Mock }

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Compare(hash, password string) error {
	args := m.Called(hash, password)
	return args.Error(0)
}

type MockTokenIssuer struct{ mock.Mock }

func (m *MockTokenIssuer) Issue(actor *identity.Actor) (string, time.Time, error) {
	args := m.Called(actor)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

// repos bundles a unit of work with its repositories. Repository accessors may be
// called any number of times.
type repos struct {
	uow           *MockUoW
	orders        *MockOrderRepository
	users         *MockUserRepository
	notifications *MockNotificationRepository
}

func newRepos() repos {
	r := repos{
		uow:           new(MockUoW),
		orders:        new(MockOrderRepository),
		users:         new(MockUserRepository),
		notifications: new(MockNotificationRepository),
	}
	r.uow.On("OrderRepository").Return(r.orders).Maybe()
	r.uow.On("UserRepository").Return(r.users).Maybe()
	r.uow.On("NotificationRepository").Return(r.notifications).Maybe()
	return r
}

func (r repos) assert(t *testing.T) {
	t.Helper()
	r.uow.AssertExpectations(t)
	r.orders.AssertExpectations(t)
	r.users.AssertExpectations(t)
	r.notifications.AssertExpectations(t)
}

func newActor(t *testing.T, id int64, role identity.Role) *identity.Actor {
	t.Helper()
	a, err := identity.NewActor(kernel.MustNewID(id), role)
	require.NoError(t, err)
	return a
}

func newStaff(t *testing.T, id int64, role identity.Role, rate string) *user.User {
	t.Helper()
	var defaultRate *kernel.Rate
	if rate != "" {
		r, err := kernel.RateFromString(rate)
		require.NoError(t, err)
		defaultRate = &r
	}
	u, err := user.RestoreUser(kernel.MustNewID(id), "user", "Staff Member", role, "hash", defaultRate, true)
	require.NoError(t, err)
	return u
}

func newMoney(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

type storedOrder struct {
	status    order.Status
	locked    bool
	developer int64
	price     string
}

func newStoredOrder(t *testing.T, s storedOrder) *order.Order {
	t.Helper()
	snapshot := order.Snapshot{
		ID:           kernel.MustNewID(100),
		Status:       s.status,
		IsLocked:     s.locked,
		CreatorID:    kernel.MustNewID(1),
		CustomerInfo: "ACME",
		CreatedAt:    fixedNow.Add(-48 * time.Hour),
		UpdatedAt:    fixedNow.Add(-48 * time.Hour),
	}
	if s.developer != 0 {
		dev := kernel.MustNewID(s.developer)
		snapshot.DeveloperID = &dev
	}
	if s.price != "" {
		price := newMoney(t, s.price)
		snapshot.FinalPrice = &price
	}
	o, err := order.RestoreOrder(snapshot)
	require.NoError(t, err)
	return o
}
