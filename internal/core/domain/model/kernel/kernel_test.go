package kernel_test

import (
	"testing"

	"mparcel/internal/core/domain/model/kernel"
	"mparcel/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUID(t *testing.T) {
	t.Run("NewUUID produces valid unique identifiers", func(t *testing.T) {
		a := kernel.NewUUID()
		b := kernel.NewUUID()

		require.NoError(t, a.Validate())
		assert.False(t, a.IsEqual(b))
	})

	t.Run("UUIDFromString round-trips", func(t *testing.T) {
		original := kernel.NewUUID()

		parsed, err := kernel.UUIDFromString(original.String())
		require.NoError(t, err)
		assert.True(t, original.IsEqual(parsed))
	})

	t.Run("UUIDFromString rejects garbage", func(t *testing.T) {
		_, err := kernel.UUIDFromString("not-a-uuid")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var id kernel.UUID
		require.ErrorIs(t, id.Validate(), kernel.ErrUUIDIsNotConstructed)
	})
}

func TestMoney(t *testing.T) {
	t.Run("positive amount", func(t *testing.T) {
		m, err := kernel.NewMoney(500)
		require.NoError(t, err)
		require.NoError(t, m.Validate())
		assert.Equal(t, int64(500), m.Amount())
		assert.Equal(t, "KES 500", m.String())
	})

	t.Run("zero and negative amounts rejected", func(t *testing.T) {
		_, err := kernel.NewMoney(0)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = kernel.NewMoney(-10)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("equality compares amounts", func(t *testing.T) {
		a, _ := kernel.NewMoney(500)
		b, _ := kernel.NewMoney(500)
		c, _ := kernel.NewMoney(501)

		assert.True(t, a.IsEqual(b))
		assert.False(t, a.IsEqual(c))
	})
}

func TestGeoLocation(t *testing.T) {
	t.Run("valid coordinates", func(t *testing.T) {
		loc, err := kernel.NewGeoLocation(-1.286389, 36.817223)
		require.NoError(t, err)
		require.NoError(t, loc.Validate())
		assert.InDelta(t, -1.286389, loc.Lat(), 1e-9)
		assert.InDelta(t, 36.817223, loc.Lon(), 1e-9)
	})

	t.Run("latitude out of range", func(t *testing.T) {
		_, err := kernel.NewGeoLocation(120, 30)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("longitude out of range", func(t *testing.T) {
		_, err := kernel.NewGeoLocation(0, 200)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}
