package services_test

import (
	"testing"
	"time"

	"mparcel/internal/core/domain/model/kernel"
	"mparcel/internal/core/domain/model/order"
	"mparcel/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type candidateSpec struct {
	phone             string
	amount            int64
	checkoutRequestID string
	paid              bool
	createdAt         time.Time
}

func buildCandidate(t *testing.T, spec candidateSpec) *order.Order {
	t.Helper()

	phone, err := kernel.NewPhone(spec.phone)
	require.NoError(t, err)
	amount, err := kernel.NewMoney(spec.amount)
	require.NoError(t, err)

	paymentStatus := order.PaymentUnpaid
	receipt := ""
	if spec.paid {
		paymentStatus = order.PaymentPaid
		receipt = "SDK7TQ81XX"
	}

	o, err := order.RestoreOrder(
		order.NewOrderID(spec.createdAt),
		"Customer",
		phone,
		"Westlands, Nairobi",
		"Kilimani, Nairobi",
		amount,
		order.StatusPending,
		paymentStatus,
		nil,
		kernel.NewUUID(),
		"",
		receipt,
		spec.checkoutRequestID,
		order.Metadata{},
		nil,
		spec.createdAt,
	)
	require.NoError(t, err)
	return o
}

func paymentDetails(t *testing.T, phone string, amount int64, checkoutRequestID string) services.PaymentDetails {
	t.Helper()

	payerPhone, err := kernel.NewPhone(phone)
	require.NoError(t, err)
	money, err := kernel.NewMoney(amount)
	require.NoError(t, err)

	return services.PaymentDetails{
		CheckoutRequestID: checkoutRequestID,
		Receipt:           "SDK7TQ81XX",
		Amount:            money,
		PayerPhone:        payerPhone,
	}
}

func TestPaymentMatcher_Match(t *testing.T) {
	matcher := services.NewPaymentMatcher()
	base := time.Date(2024, 5, 6, 9, 0, 0, 0, time.UTC)

	t.Run("correlation key beats heuristic", func(t *testing.T) {
		heuristicHit := buildCandidate(t, candidateSpec{
			phone: "0712345678", amount: 500, createdAt: base.Add(time.Hour),
		})
		keyed := buildCandidate(t, candidateSpec{
			phone: "0700000000", amount: 999,
			checkoutRequestID: "ws_CO_01052024100000", createdAt: base,
		})

		details := paymentDetails(t, "254712345678", 500, "ws_CO_01052024100000")
		got := matcher.Match(details, []*order.Order{heuristicHit, keyed})

		require.NotNil(t, got)
		assert.True(t, got.IsEqual(keyed))
	})

	t.Run("falls back to amount and trailing phone digits", func(t *testing.T) {
		other := buildCandidate(t, candidateSpec{
			phone: "0799999999", amount: 500, createdAt: base.Add(time.Minute),
		})
		match := buildCandidate(t, candidateSpec{
			phone: "0712345678", amount: 500, createdAt: base,
		})

		details := paymentDetails(t, "+254712345678", 500, "ws_CO_unknown")
		got := matcher.Match(details, []*order.Order{other, match})

		require.NotNil(t, got)
		assert.True(t, got.IsEqual(match))
	})

	t.Run("matches across phone prefix variants", func(t *testing.T) {
		match := buildCandidate(t, candidateSpec{
			phone: "254712345678", amount: 250, createdAt: base,
		})

		details := paymentDetails(t, "0712345678", 250, "")
		got := matcher.Match(details, []*order.Order{match})

		require.NotNil(t, got)
		assert.True(t, got.IsEqual(match))
	})

	t.Run("most recent candidate wins a tie", func(t *testing.T) {
		older := buildCandidate(t, candidateSpec{
			phone: "0712345678", amount: 500, createdAt: base,
		})
		newer := buildCandidate(t, candidateSpec{
			phone: "0712345678", amount: 500, createdAt: base.Add(2 * time.Hour),
		})

		details := paymentDetails(t, "0712345678", 500, "")
		got := matcher.Match(details, []*order.Order{older, newer})

		require.NotNil(t, got)
		assert.True(t, got.IsEqual(newer))
	})

	t.Run("skips settled candidates", func(t *testing.T) {
		settled := buildCandidate(t, candidateSpec{
			phone: "0712345678", amount: 500, paid: true, createdAt: base.Add(time.Hour),
		})
		unpaid := buildCandidate(t, candidateSpec{
			phone: "0712345678", amount: 500, createdAt: base,
		})

		details := paymentDetails(t, "0712345678", 500, "")
		got := matcher.Match(details, []*order.Order{settled, unpaid})

		require.NotNil(t, got)
		assert.True(t, got.IsEqual(unpaid))
	})

	t.Run("amount mismatch yields no match", func(t *testing.T) {
		candidate := buildCandidate(t, candidateSpec{
			phone: "0712345678", amount: 500, createdAt: base,
		})

		details := paymentDetails(t, "0712345678", 700, "")
		assert.Nil(t, matcher.Match(details, []*order.Order{candidate}))
	})

	t.Run("empty candidate set", func(t *testing.T) {
		details := paymentDetails(t, "0712345678", 500, "")
		assert.Nil(t, matcher.Match(details, nil))
	})
}
