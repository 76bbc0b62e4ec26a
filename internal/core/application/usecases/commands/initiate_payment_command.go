package commands

import (
	"errors"

	"mparcel/internal/core/domain/model/kernel"
	"mparcel/internal/core/domain/model/order"
	"mparcel/internal/core/domain/model/user"
	"mparcel/internal/pkg/guard"
)

var ErrInitiatePaymentCommandIsNotConstructed = errors.New(
	"InitiatePaymentCommand must be created via NewInitiatePaymentCommand constructor",
)

// InitiatePaymentCommand represents a request to push a payment prompt to
// the customer's phone for an order's amount.
type InitiatePaymentCommand struct { //nolint:recvcheck //using for validation
	orderID   order.OrderID
	actorID   kernel.UUID
	actorRole user.Role

	guard guard.ConstructorGuard
}

// NewInitiatePaymentCommand creates a command to initiate payment for an
// order on behalf of the given actor.
func NewInitiatePaymentCommand(orderID order.OrderID, actorID kernel.UUID, actorRole user.Role) (InitiatePaymentCommand, error) {
	cmd := InitiatePaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		actorID.Validate(),
		actorRole.Validate(),
	); err != nil {
		return InitiatePaymentCommand{}, err
	}

	cmd.orderID = orderID
	cmd.actorID = actorID
	cmd.actorRole = actorRole
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c InitiatePaymentCommand) Validate() error {
	return c.guard.Validate(ErrInitiatePaymentCommandIsNotConstructed)
}

func (c InitiatePaymentCommand) OrderID() order.OrderID { return c.orderID }
func (c InitiatePaymentCommand) ActorID() kernel.UUID   { return c.actorID }
func (c InitiatePaymentCommand) ActorRole() user.Role   { return c.actorRole }
