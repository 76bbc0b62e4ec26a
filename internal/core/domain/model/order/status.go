package order

import (
	"fmt"

	"mparcel/internal/pkg/errs"
)

// Status represents the delivery lifecycle state of an order.
//
// State transitions:
//
//	Pending ──┬──> InTransit ──┬──> Delivered
//	          │        │       └──> Cancelled
//	          │        └──> Pending   (courier unassigned by edit)
//	          └──> Cancelled
//
// Delivered and Cancelled are terminal: no transition leaves them.
// Every transition in the system is checked against the single table below;
// no call site carries its own status conditionals.
type Status string

const (
	// StatusPending is the initial state: created, no courier on the way.
	StatusPending Status = "Pending"

	// StatusInTransit means a courier is assigned and moving.
	StatusInTransit Status = "InTransit"

	// StatusDelivered is terminal: the courier confirmed handover.
	StatusDelivered Status = "Delivered"

	// StatusCancelled is terminal: the order was abandoned before delivery.
	StatusCancelled Status = "Cancelled"
)

// deliveryTransitions is the exhaustive transition table for the delivery
// axis. InTransit -> Cancelled is deliberately present: both the merchant
// cancel guard and the courier's cancel outcome rely on it.
func deliveryTransitions() map[Status][]Status {
	return map[Status][]Status{
		StatusPending:   {StatusInTransit, StatusCancelled},
		StatusInTransit: {StatusDelivered, StatusCancelled, StatusPending},
		StatusDelivered: {},
		StatusCancelled: {},
	}
}

// StatusFromString parses a persisted or wire status name.
func StatusFromString(value string) (Status, error) {
	s := Status(value)
	if err := s.Validate(); err != nil {
		return "", err
	}
	return s, nil
}

// Validate checks that the status is one of the four known states.
func (s Status) Validate() error {
	if _, ok := deliveryTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%q is not a valid delivery status", string(s)))
	}
	return nil
}

// String returns the status name.
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether the status locks the order against any further
// mutation.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransition reports whether the table permits moving to the target state.
func (s Status) CanTransition(to Status) bool {
	for _, allowed := range deliveryTransitions()[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Transition validates and performs a state change, returning the new status.
// A disallowed transition yields a ConflictError describing the violated rule.
func (s Status) Transition(to Status) (Status, error) {
	if err := to.Validate(); err != nil {
		return "", err
	}
	if !s.CanTransition(to) {
		return "", errs.NewConflictError(
			fmt.Sprintf("order cannot move from %s to %s", s, to))
	}
	return to, nil
}

// PaymentStatus represents the payment axis of an order, independent of the
// delivery axis. Unpaid -> Paid happens through gateway reconciliation or the
// cash-on-delivery default at delivery confirmation; Reconciled marks a
// payment later verified against the ledger.
type PaymentStatus string

const (
	PaymentUnpaid     PaymentStatus = "Unpaid"
	PaymentPaid       PaymentStatus = "Paid"
	PaymentReconciled PaymentStatus = "Reconciled"
)

func validPaymentStatuses() map[PaymentStatus]struct{} {
	return map[PaymentStatus]struct{}{
		PaymentUnpaid:     {},
		PaymentPaid:       {},
		PaymentReconciled: {},
	}
}

// PaymentStatusFromString parses a persisted payment status name.
func PaymentStatusFromString(value string) (PaymentStatus, error) {
	s := PaymentStatus(value)
	if err := s.Validate(); err != nil {
		return "", err
	}
	return s, nil
}

// Validate checks that the payment status is one of the known states.
func (s PaymentStatus) Validate() error {
	if _, ok := validPaymentStatuses()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus",
			fmt.Errorf("%q is not a valid payment status", string(s)))
	}
	return nil
}

// String returns the payment status name.
func (s PaymentStatus) String() string {
	return string(s)
}

// IsSettled reports whether money has already been credited against the order.
func (s PaymentStatus) IsSettled() bool {
	return s == PaymentPaid || s == PaymentReconciled
}
