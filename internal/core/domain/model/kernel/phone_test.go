package kernel_test

import (
	"testing"

	"mparcel/internal/core/domain/model/kernel"
	"mparcel/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPhone_Normalization(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"local format with leading zero", "0712345678", "254712345678"},
		{"international with plus", "+254712345678", "254712345678"},
		{"already canonical", "254712345678", "254712345678"},
		{"bare subscriber number", "712345678", "254712345678"},
		{"surrounding whitespace", "  0712345678 ", "254712345678"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := kernel.NewPhone(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.String())
		})
	}
}

func TestNewPhone_NormalizationIsIdempotent(t *testing.T) {
	p, err := kernel.NewPhone("0712345678")
	require.NoError(t, err)

	again, err := kernel.NewPhone(p.String())
	require.NoError(t, err)
	assert.True(t, p.IsEqual(again))
}

func TestNewPhone_LocalAndInternationalFormsAreEqual(t *testing.T) {
	local, err := kernel.NewPhone("0712345678")
	require.NoError(t, err)

	intl, err := kernel.NewPhone("+254712345678")
	require.NoError(t, err)

	assert.True(t, local.IsEqual(intl))
}

func TestNewPhone_Invalid(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		_, err := kernel.NewPhone("")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("non-digit characters", func(t *testing.T) {
		_, err := kernel.NewPhone("07one2345678")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("too short", func(t *testing.T) {
		_, err := kernel.NewPhone("07123")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestPhone_TailDigits(t *testing.T) {
	p, err := kernel.NewPhone("254712345678")
	require.NoError(t, err)

	assert.Equal(t, "712345678", p.TailDigits(9))
	assert.Equal(t, "254712345678", p.TailDigits(20))
}

func TestPhone_Validate(t *testing.T) {
	t.Run("constructed phone is valid", func(t *testing.T) {
		p, err := kernel.NewPhone("0712345678")
		require.NoError(t, err)
		require.NoError(t, p.Validate())
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var p kernel.Phone
		require.Error(t, p.Validate())
	})
}
