package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectiveTenant(t *testing.T) {
	t.Run("tenant-bound roles use the token academy", func(t *testing.T) {
		for _, role := range []Role{RoleOrgAdmin, RoleStaff} {
			p := StaffPrincipal{UserID: 1, Role: role, AcademyID: 5}

			academy, err := EffectiveTenant(p, "")
			require.NoError(t, err, role)
			assert.Equal(t, 5, academy)
		}
	})

	t.Run("override header has no effect on tenant-bound roles", func(t *testing.T) {
		p := StaffPrincipal{UserID: 1, Role: RoleStaff, AcademyID: 5}

		academy, err := EffectiveTenant(p, "9")
		require.NoError(t, err)
		assert.Equal(t, 5, academy)
	})

	t.Run("tenant-bound role without academy is rejected", func(t *testing.T) {
		p := StaffPrincipal{UserID: 1, Role: RoleOrgAdmin}

		_, err := EffectiveTenant(p, "9")
		assert.ErrorIs(t, err, ErrTenantRequired)
	})

	t.Run("superadmin uses the override value", func(t *testing.T) {
		p := StaffPrincipal{UserID: 1, Role: RoleSuperAdmin}

		academy, err := EffectiveTenant(p, "7")
		require.NoError(t, err)
		assert.Equal(t, 7, academy)
	})

	t.Run("superadmin override tolerates surrounding whitespace", func(t *testing.T) {
		p := StaffPrincipal{UserID: 1, Role: RoleSuperAdmin}

		academy, err := EffectiveTenant(p, " 7 ")
		require.NoError(t, err)
		assert.Equal(t, 7, academy)
	})

	t.Run("superadmin without valid override is rejected", func(t *testing.T) {
		p := StaffPrincipal{UserID: 1, Role: RoleSuperAdmin, AcademyID: 0}

		for _, override := range []string{"", "0", "-3", "abc", "2.5"} {
			_, err := EffectiveTenant(p, override)
			assert.ErrorIs(t, err, ErrTenantSelectionRequired, "override %q", override)
		}
	})

	t.Run("resolution never carries over between calls", func(t *testing.T) {
		p := StaffPrincipal{UserID: 1, Role: RoleSuperAdmin}

		academy, err := EffectiveTenant(p, "4")
		require.NoError(t, err)
		assert.Equal(t, 4, academy)

		// The same principal without a header must fail again.
		_, err = EffectiveTenant(p, "")
		assert.ErrorIs(t, err, ErrTenantSelectionRequired)
	})
}
