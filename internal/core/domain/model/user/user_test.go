package user_test

import (
	"testing"

	"mparcel/internal/core/domain/model/kernel"
	"mparcel/internal/core/domain/model/user"
	"mparcel/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPhone(t *testing.T, raw string) kernel.Phone {
	t.Helper()
	p, err := kernel.NewPhone(raw)
	require.NoError(t, err)
	return p
}

func TestNewUser(t *testing.T) {
	t.Run("valid courier", func(t *testing.T) {
		id := kernel.NewUUID()
		u, err := user.NewUser(id, "Brian Otieno", mustPhone(t, "0712345678"), "hash", user.RoleCourier)

		require.NoError(t, err)
		require.NoError(t, u.Validate())
		assert.True(t, u.ID().IsEqual(id))
		assert.True(t, u.IsCourier())
		assert.False(t, u.IsAdmin())
		assert.Nil(t, u.Location())
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := user.NewUser(kernel.NewUUID(), "", mustPhone(t, "0712345678"), "hash", user.RoleMerchant)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := user.NewUser(kernel.NewUUID(), "Jane", mustPhone(t, "0712345678"), "hash", user.Role("dispatcher"))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var u user.User
		require.ErrorIs(t, u.Validate(), user.ErrUserIsNotConstructed)
	})
}

func TestRoleFromString(t *testing.T) {
	for _, name := range []string{"merchant", "courier", "admin"} {
		role, err := user.RoleFromString(name)
		require.NoError(t, err)
		assert.Equal(t, name, role.String())
	}

	_, err := user.RoleFromString("driver-manager")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestUser_ReportLocation(t *testing.T) {
	u, err := user.NewUser(kernel.NewUUID(), "Brian", mustPhone(t, "0712345678"), "hash", user.RoleCourier)
	require.NoError(t, err)

	loc, err := kernel.NewGeoLocation(-1.2921, 36.8219)
	require.NoError(t, err)

	require.NoError(t, u.ReportLocation(loc))
	require.NotNil(t, u.Location())
	assert.InDelta(t, -1.2921, u.Location().Lat(), 1e-9)
}

func TestRestoreUser(t *testing.T) {
	id := kernel.NewUUID()
	loc, err := kernel.NewGeoLocation(-1.3, 36.8)
	require.NoError(t, err)

	u, err := user.RestoreUser(id, "Brian", mustPhone(t, "0712345678"), "hash", user.RoleCourier, &loc)
	require.NoError(t, err)
	require.NotNil(t, u.Location())
	assert.True(t, u.ID().IsEqual(id))
}
