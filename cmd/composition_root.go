package cmd

import (
	"context"
	"log/slog"
	"time"

	apihttp "orderdesk/internal/adapters/in/http"
	"orderdesk/internal/adapters/out/auth"
	"orderdesk/internal/adapters/out/postgres"
	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/application/usecases/queries"
	"orderdesk/internal/core/domain/services"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/jobs"
	"orderdesk/internal/obs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	policy      services.OrderPolicy
	commissions services.CommissionCalculator
	hasher      auth.BcryptPasswordHasher
	tokens      *auth.JWTTokenIssuer
	clock       ports.Clock
	metrics     *obs.Metrics
	logger      *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	clock := ports.ClockFunc(time.Now)
	tokens, err := auth.NewJWTTokenIssuer(config.AuthSecret, config.AuthTokenTTL, clock)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		config:      config,
		gormDB:      gormDB,
		uowFactory:  *postgres.NewGormUnitOfWorkFactory(gormDB),
		policy:      services.NewOrderPolicy(),
		commissions: services.NewCommissionCalculator(),
		hasher:      auth.NewBcryptPasswordHasher(config.BcryptCost),
		tokens:      tokens,
		clock:       clock,
		metrics:     obs.NewMetrics(),
		logger:      logger,
	}, nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) notificationUoWFactory() commands.NotificationUoWFactory {
	return FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) userUoWFactory() commands.UserUoWFactory {
	return FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateLoginCommandHandler() commands.LoginCommandHandler {
	return commands.NewLoginCommandHandler(c.userUoWFactory(), c.hasher, c.tokens)
}

func (c *CompositionRoot) CreateBootstrapAdminCommandHandler() commands.BootstrapAdminCommandHandler {
	return commands.NewBootstrapAdminCommandHandler(c.userUoWFactory(), c.hasher)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(c.orderUoWFactory(), c.policy, c.commissions, c.clock)
}

func (c *CompositionRoot) CreateUpdateOrderDetailsCommandHandler() commands.UpdateOrderDetailsCommandHandler {
	return commands.NewUpdateOrderDetailsCommandHandler(c.orderUoWFactory(), c.policy, c.clock)
}

func (c *CompositionRoot) CreateSetSpecialCommissionCommandHandler() commands.SetSpecialCommissionCommandHandler {
	return commands.NewSetSpecialCommissionCommandHandler(c.orderUoWFactory(), c.policy, c.clock)
}

func (c *CompositionRoot) CreateAddWorkLogCommandHandler() commands.AddWorkLogCommandHandler {
	return commands.NewAddWorkLogCommandHandler(c.orderUoWFactory(), c.policy, c.clock)
}

func (c *CompositionRoot) CreateMarkNotificationReadCommandHandler() commands.MarkNotificationReadCommandHandler {
	return commands.NewMarkNotificationReadCommandHandler(c.notificationUoWFactory())
}

func (c *CompositionRoot) CreateCreateUserCommandHandler() commands.CreateUserCommandHandler {
	return commands.NewCreateUserCommandHandler(c.userUoWFactory(), c.hasher)
}

func (c *CompositionRoot) CreateUpdateUserCommandHandler() commands.UpdateUserCommandHandler {
	return commands.NewUpdateUserCommandHandler(c.userUoWFactory(), c.hasher)
}

func (c *CompositionRoot) CreateToggleUserStatusCommandHandler() commands.ToggleUserStatusCommandHandler {
	return commands.NewToggleUserStatusCommandHandler(c.userUoWFactory())
}

func (c *CompositionRoot) CreateDeleteUserCommandHandler() commands.DeleteUserCommandHandler {
	return commands.NewDeleteUserCommandHandler(c.userUoWFactory())
}

func (c *CompositionRoot) CreateGetOrdersForActorQueryHandler() queries.GetOrdersForActorQueryHandler {
	return queries.NewGetOrdersForActorQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB, c.policy)
}

func (c *CompositionRoot) CreateListNotificationsQueryHandler() queries.ListNotificationsQueryHandler {
	return queries.NewListNotificationsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStatusDistributionQueryHandler() queries.GetStatusDistributionQueryHandler {
	return queries.NewGetStatusDistributionQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPersonalStatsQueryHandler() queries.GetPersonalStatsQueryHandler {
	return queries.NewGetPersonalStatsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListUsersQueryHandler() queries.ListUsersQueryHandler {
	return queries.NewListUsersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUserQueryHandler() queries.GetUserQueryHandler {
	return queries.NewGetUserQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer(ctx context.Context) (*apihttp.Server, error) {
	return apihttp.NewServer(
		ctx,
		apihttp.Handlers{
			Login:                 c.CreateLoginCommandHandler(),
			CreateOrder:           c.CreateCreateOrderCommandHandler(),
			TransitionOrder:       c.CreateTransitionOrderCommandHandler(),
			UpdateOrderDetails:    c.CreateUpdateOrderDetailsCommandHandler(),
			SetSpecialCommission:  c.CreateSetSpecialCommissionCommandHandler(),
			AddWorkLog:            c.CreateAddWorkLogCommandHandler(),
			MarkNotificationRead:  c.CreateMarkNotificationReadCommandHandler(),
			CreateUser:            c.CreateCreateUserCommandHandler(),
			UpdateUser:            c.CreateUpdateUserCommandHandler(),
			ToggleUserStatus:      c.CreateToggleUserStatusCommandHandler(),
			DeleteUser:            c.CreateDeleteUserCommandHandler(),
			GetOrdersForActor:     c.CreateGetOrdersForActorQueryHandler(),
			GetOrder:              c.CreateGetOrderQueryHandler(),
			ListNotifications:     c.CreateListNotificationsQueryHandler(),
			GetStatusDistribution: c.CreateGetStatusDistributionQueryHandler(),
			GetPersonalStats:      c.CreateGetPersonalStatsQueryHandler(),
			ListUsers:             c.CreateListUsersQueryHandler(),
			GetUser:               c.CreateGetUserQueryHandler(),
		},
		c.tokens,
		c.metrics,
		c.clock,
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateGetStatusDistributionQueryHandler(),
		c.metrics,
		c.config.StatsCron,
		c.logger,
	)
}

// BootstrapAdmin creates the configured super admin account on first start. It does
// nothing when no credentials are configured.
func (c *CompositionRoot) BootstrapAdmin(ctx context.Context) error {
	if c.config.BootstrapAdminUsername == "" && c.config.BootstrapAdminPassword == "" {
		return nil
	}

	cmd, err := commands.NewBootstrapAdminCommand(c.config.BootstrapAdminUsername, c.config.BootstrapAdminPassword)
	if err != nil {
		return err
	}

	created, err := c.CreateBootstrapAdminCommandHandler().Handle(ctx, cmd)
	if err != nil {
		return err
	}
	if created {
		c.logger.InfoContext(ctx, "Super admin account created", "username", cmd.Username())
	}
	return nil
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}
