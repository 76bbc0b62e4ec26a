package commands

import (
	"errors"
	"fmt"

	"mparcel/internal/core/domain/model/kernel"
	"mparcel/internal/core/domain/model/order"
	"mparcel/internal/pkg/errs"
	"mparcel/internal/pkg/guard"
)

var ErrCompleteDeliveryCommandIsNotConstructed = errors.New(
	"CompleteDeliveryCommand must be created via NewCompleteDeliveryCommand constructor",
)

// CompleteDeliveryCommand represents a courier closing out an order in
// transit, either confirming the delivery or reporting it failed.
type CompleteDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID   order.OrderID
	courierID kernel.UUID
	outcome   order.Status
	proofRef  string

	guard guard.ConstructorGuard
}

// NewCompleteDeliveryCommand creates a command to close out a delivery.
// The outcome must be Delivered or Cancelled; proofRef is an optional
// reference to a delivery confirmation (photo, signature, OTP).
func NewCompleteDeliveryCommand(
	orderID order.OrderID,
	courierID kernel.UUID,
	outcome order.Status,
	proofRef string,
) (CompleteDeliveryCommand, error) {
	cmd := CompleteDeliveryCommand{
		proofRef: proofRef,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		courierID.Validate(),
	); err != nil {
		return CompleteDeliveryCommand{}, err
	}

	if outcome != order.StatusDelivered && outcome != order.StatusCancelled {
		return CompleteDeliveryCommand{}, errs.NewValueIsInvalidErrorWithCause("outcome",
			fmt.Errorf("%q is not a delivery outcome", outcome))
	}

	cmd.orderID = orderID
	cmd.courierID = courierID
	cmd.outcome = outcome
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveryCommandIsNotConstructed)
}

func (c CompleteDeliveryCommand) OrderID() order.OrderID { return c.orderID }
func (c CompleteDeliveryCommand) CourierID() kernel.UUID { return c.courierID }
func (c CompleteDeliveryCommand) Outcome() order.Status  { return c.outcome }
func (c CompleteDeliveryCommand) ProofRef() string       { return c.proofRef }
