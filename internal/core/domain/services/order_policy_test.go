package services_test

import (
	"testing"
	"time"

	"orderdesk/internal/core/domain/model/identity"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/domain/services"
	"orderdesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func actor(t *testing.T, id int64, role identity.Role) *identity.Actor {
	t.Helper()
	a, err := identity.NewActor(kernel.MustNewID(id), role)
	require.NoError(t, err)
	return a
}

type orderState struct {
	status    order.Status
	locked    bool
	developer int64
}

func orderWith(t *testing.T, s orderState) *order.Order {
	t.Helper()
	snapshot := order.Snapshot{
		ID:           kernel.MustNewID(100),
		Status:       s.status,
		IsLocked:     s.locked,
		CreatorID:    kernel.MustNewID(1),
		CustomerInfo: "ACME",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if s.developer != 0 {
		dev := kernel.MustNewID(s.developer)
		snapshot.DeveloperID = &dev
	}
	o, err := order.RestoreOrder(snapshot)
	require.NoError(t, err)
	return o
}

func TestOrderPolicy_Scenarios(t *testing.T) {
	policy := services.NewOrderPolicy()

	t.Run("customer service reverts unlocked shipped orders only", func(t *testing.T) {
		cs := actor(t, 1, identity.CustomerService)

		unlocked := policy.Evaluate(cs, orderWith(t, orderState{status: order.Shipped}))
		locked := policy.Evaluate(cs, orderWith(t, orderState{status: order.Shipped, locked: true}))

		assert.True(t, unlocked.CanRevertToDev)
		assert.False(t, locked.CanRevertToDev)
	})

	t.Run("super admin bypasses the lock", func(t *testing.T) {
		admin := actor(t, 9, identity.SuperAdmin)

		perms := policy.Evaluate(admin, orderWith(t, orderState{status: order.Shipped, locked: true}))

		assert.True(t, perms.CanRevertToDev)
		assert.True(t, perms.CanCancel)
	})

	t.Run("only the assigned developer settles by tech", func(t *testing.T) {
		dev := actor(t, 7, identity.Developer)

		mine := policy.Evaluate(dev, orderWith(t, orderState{status: order.Received, developer: 7}))
		theirs := policy.Evaluate(dev, orderWith(t, orderState{status: order.Received, developer: 8}))

		assert.True(t, mine.CanSettleByTech)
		assert.False(t, theirs.CanSettleByTech)
	})
}

func TestOrderPolicy_FailClosed(t *testing.T) {
	policy := services.OrderPolicy{}
	o := orderWith(t, orderState{status: order.Received, developer: 7})

	t.Run("should deny everything without an actor", func(t *testing.T) {
		assert.Equal(t, services.PermissionSet{}, policy.Evaluate(nil, o))
		assert.Equal(t, services.PermissionSet{}, policy.Evaluate(&identity.Actor{}, o))
	})

	t.Run("should deny everything without an order", func(t *testing.T) {
		admin := actor(t, 9, identity.SuperAdmin)

		assert.Equal(t, services.PermissionSet{}, policy.Evaluate(admin, nil))
		assert.False(t, policy.Evaluate(admin, nil).CanSetSpecialCommission)
	})

	t.Run("should deny developer actions without an assignment", func(t *testing.T) {
		dev := actor(t, 7, identity.Developer)

		perms := policy.Evaluate(dev, orderWith(t, orderState{status: order.Received}))

		assert.Equal(t, services.PermissionSet{}, perms)
	})
}

func TestOrderPolicy_Predicates(t *testing.T) {
	policy := services.NewOrderPolicy()

	t.Run("cancel is denied from terminal statuses for everyone", func(t *testing.T) {
		for _, status := range []order.Status{order.Settled, order.Cancelled} {
			for _, role := range identity.Roles() {
				perms := policy.Evaluate(actor(t, 7, role), orderWith(t, orderState{status: status, developer: 7}))
				assert.False(t, perms.CanCancel, "%s on %s", role, status)
			}
		}
	})

	t.Run("cancel from non-terminal statuses depends on role and lock", func(t *testing.T) {
		admin := actor(t, 9, identity.SuperAdmin)
		cs := actor(t, 1, identity.CustomerService)
		fin := actor(t, 3, identity.Finance)

		for _, status := range order.Statuses() {
			if status.IsTerminal() {
				continue
			}
			open := orderWith(t, orderState{status: status})
			locked := orderWith(t, orderState{status: status, locked: true})

			assert.True(t, policy.Evaluate(admin, locked).CanCancel)
			assert.True(t, policy.Evaluate(cs, open).CanCancel)
			assert.False(t, policy.Evaluate(cs, locked).CanCancel)
			assert.False(t, policy.Evaluate(fin, open).CanCancel)
		}
	})

	t.Run("revert to dev needs shipped or received", func(t *testing.T) {
		admin := actor(t, 9, identity.SuperAdmin)

		for _, status := range order.Statuses() {
			want := status == order.Shipped || status == order.Received
			got := policy.Evaluate(admin, orderWith(t, orderState{status: status})).CanRevertToDev
			assert.Equal(t, want, got, status.String())
		}
	})

	t.Run("work logs need the assigned developer and no lock", func(t *testing.T) {
		dev := actor(t, 7, identity.Developer)
		cs := actor(t, 7, identity.CustomerService)

		assert.True(t, policy.Evaluate(dev, orderWith(t, orderState{status: order.InDevelopment, developer: 7})).CanAddWorkLog)
		assert.False(t, policy.Evaluate(dev, orderWith(t, orderState{status: order.InDevelopment, developer: 7, locked: true})).CanAddWorkLog)
		assert.False(t, policy.Evaluate(dev, orderWith(t, orderState{status: order.Settled, developer: 7, locked: true})).CanAddWorkLog)
		assert.False(t, policy.Evaluate(cs, orderWith(t, orderState{status: order.InDevelopment, developer: 7})).CanAddWorkLog)
	})

	t.Run("special commission is super admin only regardless of status", func(t *testing.T) {
		for _, status := range order.Statuses() {
			o := orderWith(t, orderState{status: status, locked: status.IsTerminal(), developer: 7})
			for _, role := range identity.Roles() {
				got := policy.Evaluate(actor(t, 7, role), o).CanSetSpecialCommission
				assert.Equal(t, role == identity.SuperAdmin, got, "%s on %s", role, status)
			}
		}
	})

	t.Run("finance verifies and settles unlocked orders", func(t *testing.T) {
		fin := actor(t, 3, identity.Finance)

		assert.True(t, policy.Evaluate(fin, orderWith(t, orderState{status: order.PendingSettlement})).CanVerify)
		assert.True(t, policy.Evaluate(fin, orderWith(t, orderState{status: order.Verified})).CanSettle)
		assert.False(t, policy.Evaluate(fin, orderWith(t, orderState{status: order.Verified, locked: true})).CanSettle)
	})

	t.Run("customer service drives the customer facing steps", func(t *testing.T) {
		cs := actor(t, 1, identity.CustomerService)

		assert.True(t, policy.Allows(cs, orderWith(t, orderState{status: order.PendingAssignment}), order.RequestPayment))
		assert.True(t, policy.Allows(cs, orderWith(t, orderState{status: order.PendingPayment}), order.StartDevelopment))
		assert.True(t, policy.Allows(cs, orderWith(t, orderState{status: order.InDevelopment}), order.Ship))
		assert.True(t, policy.Allows(cs, orderWith(t, orderState{status: order.Shipped}), order.ConfirmReceipt))
		assert.False(t, policy.Allows(cs, orderWith(t, orderState{status: order.Shipped}), order.Ship))
	})

	t.Run("every allowed action is legal in the current status", func(t *testing.T) {
		for _, status := range order.Statuses() {
			for _, locked := range []bool{false, true} {
				o := orderWith(t, orderState{status: status, locked: locked, developer: 7})
				for _, role := range identity.Roles() {
					for _, action := range policy.Evaluate(actor(t, 7, role), o).Actions() {
						assert.True(t, status.CanApply(action), "%s may %s from %s", role, action, status)
					}
				}
			}
		}
	})
}

func TestOrderPolicy_CanView(t *testing.T) {
	policy := services.NewOrderPolicy()
	assigned := orderWith(t, orderState{status: order.InDevelopment, developer: 7})

	tests := []struct {
		name  string
		actor *identity.Actor
		want  bool
	}{
		{"super admin sees every order", actor(t, 9, identity.SuperAdmin), true},
		{"finance sees every order", actor(t, 4, identity.Finance), true},
		{"the creating customer service sees it", actor(t, 1, identity.CustomerService), true},
		{"another customer service does not", actor(t, 2, identity.CustomerService), false},
		{"the assigned developer sees it", actor(t, 7, identity.Developer), true},
		{"a foreign developer does not", actor(t, 8, identity.Developer), false},
		{"nobody without a session", nil, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, policy.CanView(tc.actor, assigned))
		})
	}

	t.Run("a developer cannot see an unassigned order", func(t *testing.T) {
		unassigned := orderWith(t, orderState{status: order.PendingAssignment})

		assert.False(t, policy.CanView(actor(t, 7, identity.Developer), unassigned))
	})

	t.Run("nobody sees a missing order", func(t *testing.T) {
		assert.False(t, policy.CanView(actor(t, 9, identity.SuperAdmin), nil))
	})
}

func TestOrderPolicy_Authorize(t *testing.T) {
	policy := services.NewOrderPolicy()

	t.Run("should pass allowed actions", func(t *testing.T) {
		dev := actor(t, 7, identity.Developer)

		err := policy.Authorize(dev, orderWith(t, orderState{status: order.Received, developer: 7}), order.SettleByTech)

		require.NoError(t, err)
	})

	t.Run("should explain the lock", func(t *testing.T) {
		cs := actor(t, 1, identity.CustomerService)

		err := policy.Authorize(cs, orderWith(t, orderState{status: order.Shipped, locked: true}), order.RevertToDev)

		var denied *errs.PermissionDeniedError
		require.ErrorAs(t, err, &denied)
		assert.Equal(t, "REVERT_TO_DEV", denied.Action)
		assert.Equal(t, "order is locked", denied.Reason)
		assert.ErrorIs(t, err, errs.ErrPermissionDenied)
	})

	t.Run("should explain a foreign assignment", func(t *testing.T) {
		dev := actor(t, 7, identity.Developer)

		err := policy.AuthorizeOperation(dev, orderWith(t, orderState{status: order.InDevelopment, developer: 8}), services.OperationAddWorkLog)

		var denied *errs.PermissionDeniedError
		require.ErrorAs(t, err, &denied)
		assert.Equal(t, "not the assigned developer", denied.Reason)
	})

	t.Run("should deny unauthenticated callers", func(t *testing.T) {
		err := policy.AuthorizeOperation(nil, orderWith(t, orderState{status: order.InDevelopment}), services.OperationUpdateDetails)

		assert.ErrorIs(t, err, errs.ErrPermissionDenied)
		assert.Contains(t, err.Error(), "not authenticated")
	})
}

func TestPermissionSet_Allows(t *testing.T) {
	all := services.PermissionSet{
		CanCancel:           true,
		CanRevertToDev:      true,
		CanSettleByTech:     true,
		CanRequestPayment:   true,
		CanStartDevelopment: true,
		CanShip:             true,
		CanConfirmReceipt:   true,
		CanVerify:           true,
		CanSettle:           true,
	}

	assert.Equal(t, order.Actions(), all.Actions())
	assert.False(t, all.Allows(order.UnknownAction))
	assert.False(t, all.AllowsOperation(services.Operation("DELETE")))
	assert.Empty(t, services.PermissionSet{}.Actions())
}
