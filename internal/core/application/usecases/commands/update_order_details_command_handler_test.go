package commands_test

import (
	"testing"

	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/domain/model/identity"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/domain/services"
	"orderdesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newUpdateDetailsHandler(r repos) commands.UpdateOrderDetailsCommandHandler {
	return commands.NewUpdateOrderDetailsCommandHandler(orderUoWFactory{uow: r.uow}, services.NewOrderPolicy(), clock)
}

func TestNewUpdateOrderDetailsCommand(t *testing.T) {
	cs := newActor(t, 1, identity.CustomerService)

	t.Run("should require at least one change", func(t *testing.T) {
		_, err := commands.NewUpdateOrderDetailsCommand(cs, orderID, nil, commands.KeepDeveloper, kernel.ID{})

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should require a developer to assign", func(t *testing.T) {
		_, err := commands.NewUpdateOrderDetailsCommand(cs, orderID, nil, commands.AssignDeveloper, kernel.ID{})

		assert.ErrorIs(t, err, kernel.ErrIDIsNotConstructed)
	})

	t.Run("should reject an unknown developer change", func(t *testing.T) {
		_, err := commands.NewUpdateOrderDetailsCommand(cs, orderID, nil, commands.DeveloperChange(9), kernel.ID{})

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should copy the price", func(t *testing.T) {
		price := newMoney(t, "1200")

		cmd, err := commands.NewUpdateOrderDetailsCommand(cs, orderID, &price, commands.UnassignDeveloper, kernel.ID{})

		require.NoError(t, err)
		assert.NotSame(t, &price, cmd.FinalPrice())
		assert.Equal(t, "1200.00", cmd.FinalPrice().String())
		assert.Equal(t, commands.UnassignDeveloper, cmd.DeveloperChange())
	})
}

func TestUpdateOrderDetailsCommandHandler_Handle(t *testing.T) {
	t.Run("should set the price and assign a new developer", func(t *testing.T) {
		ctx := t.Context()
		r := newRepos()
		o := newStoredOrder(t, storedOrder{status: order.PendingPayment})
		developer := kernel.MustNewID(7)
		mock.InOrder(
			r.uow.On("Begin", ctx).Return(nil).Once(),
			r.orders.On("Get", ctx, orderID).Return(o, nil).Once(),
			r.users.On("Get", ctx, developer).Return(newStaff(t, 7, identity.Developer, ""), nil).Once(),
			r.orders.On("Update", ctx, o).Return(nil).Once(),
			r.notifications.On("Add", ctx, mock.AnythingOfType("*notification.Notification")).Return(nil).Once(),
			r.uow.On("Commit", ctx).Return(nil).Once(),
			r.uow.On("Rollback", ctx).Return(nil).Once(),
		)
		price := newMoney(t, "1500")
		cmd, err := commands.NewUpdateOrderDetailsCommand(
			newActor(t, 1, identity.CustomerService), orderID, &price, commands.AssignDeveloper, developer,
		)
		require.NoError(t, err)

		err = newUpdateDetailsHandler(r).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.True(t, o.IsAssignedTo(developer))
		finalPrice, ok := o.FinalPrice()
		require.True(t, ok)
		assert.True(t, finalPrice.IsEqual(price))
		r.assert(t)
	})

	t.Run("should not notify when the developer is unchanged", func(t *testing.T) {
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
		cmd, err := commands.NewUpdateOrderDetailsCommand(
			newActor(t, 9, identity.CustomerService), orderID, nil, commands.AssignDeveloper, kernel.MustNewID(7),
		)
		require.NoError(t, err)

		err = newUpdateDetailsHandler(r).Handle(ctx, cmd)

		require.NoError(t, err)
		r.users.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
		r.notifications.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
		r.assert(t)
	})

	t.Run("should unassign the developer", func(t *testing.T) {
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
		cmd, err := commands.NewUpdateOrderDetailsCommand(
			newActor(t, 1, identity.CustomerService), orderID, nil, commands.UnassignDeveloper, kernel.ID{},
		)
		require.NoError(t, err)

		err = newUpdateDetailsHandler(r).Handle(ctx, cmd)

		require.NoError(t, err)
		_, assigned := o.DeveloperID()
		assert.False(t, assigned)
		r.assert(t)
	})

	t.Run("should deny edits on a locked order", func(t *testing.T) {
		ctx := t.Context()
		r := newRepos()
		o := newStoredOrder(t, storedOrder{status: order.Shipped, locked: true})
		mock.InOrder(
			r.uow.On("Begin", ctx).Return(nil).Once(),
			r.orders.On("Get", ctx, orderID).Return(o, nil).Once(),
			r.uow.On("Rollback", ctx).Return(nil).Once(),
		)
		price := newMoney(t, "10")
		cmd, err := commands.NewUpdateOrderDetailsCommand(
			newActor(t, 1, identity.CustomerService), orderID, &price, commands.KeepDeveloper, kernel.ID{},
		)
		require.NoError(t, err)

		err = newUpdateDetailsHandler(r).Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrPermissionDenied)
		_, priced := o.FinalPrice()
		assert.False(t, priced)
		r.assert(t)
	})
}
