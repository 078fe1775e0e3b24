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

func newRate(t *testing.T, s string) *kernel.Rate {
	t.Helper()
	r, err := kernel.RateFromString(s)
	require.NoError(t, err)
	return &r
}

func TestNewSetSpecialCommissionCommand(t *testing.T) {
	admin := newActor(t, 9, identity.SuperAdmin)

	t.Run("should require a rate", func(t *testing.T) {
		_, err := commands.NewSetSpecialCommissionCommand(admin, orderID, nil, nil)

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should keep a partial override", func(t *testing.T) {
		cmd, err := commands.NewSetSpecialCommissionCommand(admin, orderID, nil, newRate(t, "25"))

		require.NoError(t, err)
		_, hasCS := cmd.Override().CSRate()
		tech, hasTech := cmd.Override().TechRate()
		assert.False(t, hasCS)
		require.True(t, hasTech)
		assert.Equal(t, "25", tech.String())
	})
}

func TestSetSpecialCommissionCommandHandler_Handle(t *testing.T) {
	t.Run("should merge the override for an administrator", func(t *testing.T) {
		ctx := t.Context()
		r := newRepos()
		o := newStoredOrder(t, storedOrder{status: order.Shipped, locked: true})
		mock.InOrder(
			r.uow.On("Begin", ctx).Return(nil).Once(),
			r.orders.On("Get", ctx, orderID).Return(o, nil).Once(),
			r.orders.On("Update", ctx, o).Return(nil).Once(),
			r.uow.On("Commit", ctx).Return(nil).Once(),
			r.uow.On("Rollback", ctx).Return(nil).Once(),
		)
		cmd, err := commands.NewSetSpecialCommissionCommand(newActor(t, 9, identity.SuperAdmin), orderID, newRate(t, "12.5"), nil)
		require.NoError(t, err)

		err = commands.NewSetSpecialCommissionCommandHandler(orderUoWFactory{uow: r.uow}, services.NewOrderPolicy(), clock).
			Handle(ctx, cmd)

		require.NoError(t, err)
		cs, ok := o.SpecialCommission().CSRate()
		require.True(t, ok)
		assert.True(t, cs.IsEqual(*newRate(t, "12.5")))
		r.assert(t)
	})

	t.Run("should deny other roles", func(t *testing.T) {
		ctx := t.Context()
		r := newRepos()
		o := newStoredOrder(t, storedOrder{status: order.InDevelopment})
		mock.InOrder(
			r.uow.On("Begin", ctx).Return(nil).Once(),
			r.orders.On("Get", ctx, orderID).Return(o, nil).Once(),
			r.uow.On("Rollback", ctx).Return(nil).Once(),
		)
		cmd, err := commands.NewSetSpecialCommissionCommand(newActor(t, 3, identity.Finance), orderID, newRate(t, "5"), nil)
		require.NoError(t, err)

		err = commands.NewSetSpecialCommissionCommandHandler(orderUoWFactory{uow: r.uow}, services.NewOrderPolicy(), clock).
			Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrPermissionDenied)
		assert.True(t, o.SpecialCommission().IsEmpty())
		r.assert(t)
	})

	t.Run("should reject changes on a settled order", func(t *testing.T) {
		ctx := t.Context()
		r := newRepos()
		o := newStoredOrder(t, storedOrder{status: order.Settled, locked: true})
		mock.InOrder(
			r.uow.On("Begin", ctx).Return(nil).Once(),
			r.orders.On("Get", ctx, orderID).Return(o, nil).Once(),
			r.uow.On("Rollback", ctx).Return(nil).Once(),
		)
		cmd, err := commands.NewSetSpecialCommissionCommand(newActor(t, 9, identity.SuperAdmin), orderID, newRate(t, "5"), nil)
		require.NoError(t, err)

		err = commands.NewSetSpecialCommissionCommandHandler(orderUoWFactory{uow: r.uow}, services.NewOrderPolicy(), clock).
			Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrIllegalTransition)
		r.assert(t)
	})
}
