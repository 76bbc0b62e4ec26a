package services

import (
	"mparcel/internal/core/domain/model/kernel"
	"mparcel/internal/core/domain/model/order"
)

// phoneTailLength is how many trailing digits of the payer phone must match
// the order's customer phone. The trailing 9 digits of a Kenyan MSISDN are
// the subscriber number, which survives every prefix variation the gateway
// applies ("0712...", "254712...", "+254712...").
const phoneTailLength = 9

// PaymentDetails carries the usable signals extracted from a successful
// gateway callback. CheckoutRequestID is the correlation key issued at STK
// initiation; the gateway echoes it, but older orders (or direct paybill
// payments) may have nothing stored to match it against.
type PaymentDetails struct {
	CheckoutRequestID string
	Receipt           string
	Amount            kernel.Money
	PayerPhone        kernel.Phone
}

// PaymentMatcher is a domain service that locates, among unpaid orders, the
// one an inbound payment callback most plausibly pays for.
//
// Matching strategy, in order of trust:
//  1. Exact correlation: an order whose stored checkout request identifier
//     equals the callback's. This is authoritative when present.
//  2. Heuristic fallback: equal amount and equal trailing phone digits.
//     This is best-effort: two concurrent unpaid orders with the same amount
//     and payer are indistinguishable, in which case the most recently
//     created candidate wins.
//
// The matcher is pure; callers load the candidate set (orders whose payment
// status is not settled) and perform the conditional write themselves.
type PaymentMatcher struct{}

// NewPaymentMatcher creates a new PaymentMatcher instance.
func NewPaymentMatcher() PaymentMatcher {
	return PaymentMatcher{}
}

// Match returns the best-matching candidate, or nil when nothing qualifies.
// Candidates already settled are skipped regardless of other signals.
func (m PaymentMatcher) Match(details PaymentDetails, candidates []*order.Order) *order.Order {
	if byKey := m.matchByCorrelationKey(details, candidates); byKey != nil {
		return byKey
	}
	return m.matchByHeuristic(details, candidates)
}

func (m PaymentMatcher) matchByCorrelationKey(details PaymentDetails, candidates []*order.Order) *order.Order {
	if details.CheckoutRequestID == "" {
		return nil
	}
	for _, candidate := range candidates {
		if candidate.PaymentStatus().IsSettled() {
			continue
		}
		if candidate.CheckoutRequestID() == details.CheckoutRequestID {
			return candidate
		}
	}
	return nil
}

func (m PaymentMatcher) matchByHeuristic(details PaymentDetails, candidates []*order.Order) *order.Order {
	var best *order.Order
	tail := details.PayerPhone.TailDigits(phoneTailLength)

	for _, candidate := range candidates {
		if candidate.PaymentStatus().IsSettled() {
			continue
		}
		if !candidate.Amount().IsEqual(details.Amount) {
			continue
		}
		if candidate.CustomerPhone().TailDigits(phoneTailLength) != tail {
			continue
		}
		if best == nil || candidate.CreatedAt().After(best.CreatedAt()) {
			best = candidate
		}
	}
	return best
}
