package kernel

import (
	"fmt"

	"mparcel/internal/pkg/errs"
	"mparcel/internal/pkg/guard"
)

// ErrMoneyIsNotConstructed indicates a Money that was not created via NewMoney.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("Money must be created via NewMoney")

// Money is a whole-unit KES amount. The payment gateway deals in whole
// shillings, and reconciliation matches callbacks by exact amount equality,
// so the amount is kept as an integer rather than a float.
type Money struct {
	amount int64

	guard guard.ConstructorGuard
}

// NewMoney creates a Money value. The amount must be positive.
func NewMoney(amount int64) (Money, error) {
	if amount <= 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d is not greater than 0", amount))
	}
	return Money{
		amount: amount,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Money was created via NewMoney.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Amount returns the amount in whole KES.
func (m Money) Amount() int64 {
	return m.amount
}

// IsEqual compares two amounts.
func (m Money) IsEqual(other Money) bool {
	return m.amount == other.amount
}

// String formats the amount for messages, e.g. "KES 500".
func (m Money) String() string {
	return fmt.Sprintf("KES %d", m.amount)
}
