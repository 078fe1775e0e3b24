package commands_test

import (
	"errors"
	"testing"

	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/domain/model/identity"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/domain/model/user"
	"orderdesk/internal/core/domain/services"
	"orderdesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var orderID = kernel.MustNewID(100)

func newTransitionHandler(r repos) commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(
		orderUoWFactory{uow: r.uow},
		services.NewOrderPolicy(),
		services.NewCommissionCalculator(),
		clock,
	)
}

func newTransitionCommand(t *testing.T, actor *identity.Actor, action order.Action) commands.TransitionOrderCommand {
	t.Helper()
	cmd, err := commands.NewTransitionOrderCommand(actor, orderID, action)
	require.NoError(t, err)
	return cmd
}

func TestNewTransitionOrderCommand(t *testing.T) {
	t.Run("should reject missing parts", func(t *testing.T) {
		_, err := commands.NewTransitionOrderCommand(nil, kernel.ID{}, order.UnknownAction)

		require.Error(t, err)
		assert.ErrorIs(t, err, identity.ErrActorIsNotConstructed)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject a zero value command", func(t *testing.T) {
		var cmd commands.TransitionOrderCommand

		_, err := newTransitionHandler(newRepos()).Handle(t.Context(), cmd)

		assert.ErrorIs(t, err, commands.ErrTransitionOrderCommandIsNotConstructed)
	})
}

func TestTransitionOrderCommandHandler_Handle_Verify(t *testing.T) {
	ctx := t.Context()
	r := newRepos()
	o := newStoredOrder(t, storedOrder{status: order.PendingSettlement, developer: 7, price: "1000"})
	creator := newStaff(t, 1, identity.CustomerService, "10")
	developer := newStaff(t, 7, identity.Developer, "30")

	mock.InOrder(
		r.uow.On("Begin", ctx).Return(nil).Once(),
		r.orders.On("Get", ctx, orderID).Return(o, nil).Once(),
		r.users.On("Get", ctx, kernel.MustNewID(1)).Return(creator, nil).Once(),
		r.users.On("Get", ctx, kernel.MustNewID(7)).Return(developer, nil).Once(),
		r.notifications.On("Add", ctx, mock.AnythingOfType("*notification.Notification")).Return(nil).Twice(),
		r.orders.On("Update", ctx, mock.MatchedBy(func(o *order.Order) bool {
			return o.Status() == order.Verified && len(o.Commissions()) == 2
		})).Return(nil).Once(),
		r.uow.On("Commit", ctx).Return(nil).Once(),
		r.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	result, err := newTransitionHandler(r).Handle(ctx, newTransitionCommand(t, newActor(t, 3, identity.Finance), order.Verify))

	require.NoError(t, err)
	assert.Equal(t, order.PendingSettlement, result.From)
	assert.Equal(t, order.Verified, result.To)
	commissions := o.Commissions()
	require.Len(t, commissions, 2)
	assert.Equal(t, "100.00", commissions[0].Amount().String())
	assert.Equal(t, "300.00", commissions[1].Amount().String())
	r.assert(t)
}

func TestTransitionOrderCommandHandler_Handle_SettleByTech(t *testing.T) {
	ctx := t.Context()
	r := newRepos()
	o := newStoredOrder(t, storedOrder{status: order.Received, developer: 7})
	finance := []*user.User{newStaff(t, 3, identity.Finance, ""), newStaff(t, 4, identity.Finance, "")}

	mock.InOrder(
		r.uow.On("Begin", ctx).Return(nil).Once(),
		r.orders.On("Get", ctx, orderID).Return(o, nil).Once(),
		r.users.On("Get", ctx, kernel.MustNewID(7)).Return(newStaff(t, 7, identity.Developer, ""), nil).Once(),
		r.users.On("ListActiveByRole", ctx, identity.Finance).Return(finance, nil).Once(),
		r.notifications.On("Add", ctx, mock.AnythingOfType("*notification.Notification")).Return(nil).Twice(),
		r.orders.On("Update", ctx, o).Return(nil).Once(),
		r.uow.On("Commit", ctx).Return(nil).Once(),
		r.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	result, err := newTransitionHandler(r).Handle(ctx, newTransitionCommand(t, newActor(t, 7, identity.Developer), order.SettleByTech))

	require.NoError(t, err)
	assert.Equal(t, order.PendingSettlement, result.To)
	r.assert(t)
}

func TestTransitionOrderCommandHandler_Handle_Ship(t *testing.T) {
	ctx := t.Context()
	r := newRepos()
	o := newStoredOrder(t, storedOrder{status: order.InDevelopment, developer: 7})

	mock.InOrder(
		r.uow.On("Begin", ctx).Return(nil).Once(),
		r.orders.On("Get", ctx, orderID).Return(o, nil).Once(),
		r.orders.On("Update", ctx, o).Return(nil).Once(),
		r.uow.On("Commit", ctx).Return(nil).Once(),
		r.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	_, err := newTransitionHandler(r).Handle(ctx, newTransitionCommand(t, newActor(t, 1, identity.CustomerService), order.Ship))

	require.NoError(t, err)
	shippedAt, ok := o.ShippedAt()
	require.True(t, ok)
	assert.Equal(t, fixedNow, shippedAt)
	r.assert(t)
}

func TestTransitionOrderCommandHandler_Handle_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		state  storedOrder
		actor  func(t *testing.T) *identity.Actor
		action order.Action
		want   error
	}{
		{
			name:   "should reject actions from a terminal status",
			state:  storedOrder{status: order.Settled, locked: true},
			actor:  func(t *testing.T) *identity.Actor { return newActor(t, 9, identity.SuperAdmin) },
			action: order.Cancel,
			want:   errs.ErrIllegalTransition,
		},
		{
			name:   "should deny customer service on a locked order",
			state:  storedOrder{status: order.Shipped, locked: true},
			actor:  func(t *testing.T) *identity.Actor { return newActor(t, 1, identity.CustomerService) },
			action: order.RevertToDev,
			want:   errs.ErrPermissionDenied,
		},
		{
			name:   "should deny a developer on a foreign order",
			state:  storedOrder{status: order.Received, developer: 8},
			actor:  func(t *testing.T) *identity.Actor { return newActor(t, 7, identity.Developer) },
			action: order.SettleByTech,
			want:   errs.ErrPermissionDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			r := newRepos()
			o := newStoredOrder(t, tt.state)

			mock.InOrder(
				r.uow.On("Begin", ctx).Return(nil).Once(),
				r.orders.On("Get", ctx, orderID).Return(o, nil).Once(),
				r.uow.On("Rollback", ctx).Return(nil).Once(),
			)

			_, err := newTransitionHandler(r).Handle(ctx, newTransitionCommand(t, tt.actor(t), tt.action))

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, tt.state.status, o.Status())
			r.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			r.uow.AssertNotCalled(t, "Commit", mock.Anything)
			r.assert(t)
		})
	}
}

func TestTransitionOrderCommandHandler_Handle_Failures(t *testing.T) {
	t.Run("should return begin errors", func(t *testing.T) {
		ctx := t.Context()
		r := newRepos()
		r.uow.On("Begin", ctx).Return(errors.New("db down")).Once()

		_, err := newTransitionHandler(r).Handle(ctx, newTransitionCommand(t, newActor(t, 9, identity.SuperAdmin), order.Cancel))

		assert.EqualError(t, err, "db down")
		r.uow.AssertNotCalled(t, "Rollback", mock.Anything)
	})

	t.Run("should pass not found through", func(t *testing.T) {
		ctx := t.Context()
		r := newRepos()
		mock.InOrder(
			r.uow.On("Begin", ctx).Return(nil).Once(),
			r.orders.On("Get", ctx, orderID).Return(nil, errs.NewObjectNotFoundError("order", orderID.String())).Once(),
			r.uow.On("Rollback", ctx).Return(nil).Once(),
		)

		_, err := newTransitionHandler(r).Handle(ctx, newTransitionCommand(t, newActor(t, 9, identity.SuperAdmin), order.Cancel))

		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
		r.assert(t)
	})

	t.Run("should roll back when the update fails", func(t *testing.T) {
		ctx := t.Context()
		r := newRepos()
		o := newStoredOrder(t, storedOrder{status: order.InDevelopment})
		mock.InOrder(
			r.uow.On("Begin", ctx).Return(nil).Once(),
			r.orders.On("Get", ctx, orderID).Return(o, nil).Once(),
			r.orders.On("Update", ctx, o).Return(errors.New("write failed")).Once(),
			r.uow.On("Rollback", ctx).Return(nil).Once(),
		)

		_, err := newTransitionHandler(r).Handle(ctx, newTransitionCommand(t, newActor(t, 9, identity.SuperAdmin), order.Cancel))

		assert.EqualError(t, err, "write failed")
		r.uow.AssertNotCalled(t, "Commit", mock.Anything)
		r.assert(t)
	})
}
