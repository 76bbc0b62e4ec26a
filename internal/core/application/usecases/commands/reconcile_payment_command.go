package commands

import (
	"errors"

	"mparcel/internal/pkg/errs"
	"mparcel/internal/pkg/guard"
)

var ErrReconcilePaymentCommandIsNotConstructed = errors.New(
	"ReconcilePaymentCommand must be created via NewReconcilePaymentCommand constructor",
)

// ReconcilePaymentCommand carries the facts extracted from an asynchronous
// payment gateway callback. A non-zero result code means the customer
// declined or the prompt timed out; receipt, amount and phone are only
// present on success.
type ReconcilePaymentCommand struct { //nolint:recvcheck //using for validation
	resultCode        int
	resultDescription string
	checkoutRequestID string
	receipt           string
	amount            int64
	phone             string

	guard guard.ConstructorGuard
}

// NewReconcilePaymentCommand creates a command from callback data. The
// checkout request identifier is always present in gateway callbacks; a
// successful result must also carry a receipt and a positive amount.
func NewReconcilePaymentCommand(
	resultCode int,
	resultDescription string,
	checkoutRequestID string,
	receipt string,
	amount int64,
	phone string,
) (ReconcilePaymentCommand, error) {
	if checkoutRequestID == "" {
		return ReconcilePaymentCommand{}, errs.NewValueIsRequiredError("checkoutRequestId")
	}
	if resultCode == 0 {
		if receipt == "" {
			return ReconcilePaymentCommand{}, errs.NewValueIsRequiredError("mpesaReceiptNumber")
		}
		if amount <= 0 {
			return ReconcilePaymentCommand{}, errs.NewValueIsInvalidError("amount")
		}
	}

	return ReconcilePaymentCommand{
		resultCode:        resultCode,
		resultDescription: resultDescription,
		checkoutRequestID: checkoutRequestID,
		receipt:           receipt,
		amount:            amount,
		phone:             phone,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReconcilePaymentCommand) Validate() error {
	return c.guard.Validate(ErrReconcilePaymentCommandIsNotConstructed)
}

func (c ReconcilePaymentCommand) ResultCode() int           { return c.resultCode }
func (c ReconcilePaymentCommand) ResultDescription() string { return c.resultDescription }
func (c ReconcilePaymentCommand) CheckoutRequestID() string { return c.checkoutRequestID }
func (c ReconcilePaymentCommand) Receipt() string           { return c.receipt }
func (c ReconcilePaymentCommand) Amount() int64             { return c.amount }
func (c ReconcilePaymentCommand) Phone() string             { return c.phone }

// Succeeded reports whether the callback announces a completed payment.
func (c ReconcilePaymentCommand) Succeeded() bool {
	return c.resultCode == 0
}
