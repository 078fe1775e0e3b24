package identity_test

import (
	"fmt"
	"testing"

	"orderdesk/internal/core/domain/model/identity"
	"orderdesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole_Constants(t *testing.T) {
	assert.Equal(t, 0, int(identity.Unknown))
	assert.Equal(t, 1, int(identity.SuperAdmin))
	assert.Equal(t, 2, int(identity.CustomerService))
	assert.Equal(t, 3, int(identity.Developer))
	assert.Equal(t, 4, int(identity.Finance))
}

func TestParseRole(t *testing.T) {
	t.Run("should round trip every role", func(t *testing.T) {
		for _, r := range identity.Roles() {
			t.Run(r.String(), func(t *testing.T) {
				parsed, err := identity.ParseRole(r.String())

				require.NoError(t, err)
				assert.Equal(t, r, parsed)
			})
		}
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		for _, s := range []string{"", "UNKNOWN", "super_admin", "ADMIN"} {
			_, err := identity.ParseRole(s)

			require.Error(t, err)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}

func TestRole_Validate(t *testing.T) {
	for _, r := range identity.Roles() {
		require.NoError(t, r.Validate())
	}

	for _, r := range []identity.Role{identity.Unknown, identity.Role(-1), identity.Role(5)} {
		t.Run(fmt.Sprintf("should reject %d", int(r)), func(t *testing.T) {
			err := r.Validate()

			require.Error(t, err)
			assert.IsType(t, &errs.ValueIsInvalidError{}, err)
			assert.Equal(t, "UNKNOWN", r.String())
		})
	}
}

func TestRole_In(t *testing.T) {
	assert.True(t, identity.Finance.In(identity.Finance, identity.SuperAdmin))
	assert.False(t, identity.Developer.In(identity.Finance, identity.SuperAdmin))
	assert.False(t, identity.Developer.In())
}
