package commands

import (
	"errors"

	"mparcel/internal/core/domain/model/kernel"
	"mparcel/internal/core/domain/model/order"
	"mparcel/internal/core/domain/model/user"
	"mparcel/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand represents a request to cancel an order before
// completion.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   order.OrderID
	actorID   kernel.UUID
	actorRole user.Role

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a command to cancel an order on behalf of
// the given actor.
func NewCancelOrderCommand(orderID order.OrderID, actorID kernel.UUID, actorRole user.Role) (CancelOrderCommand, error) {
	cmd := CancelOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		actorID.Validate(),
		actorRole.Validate(),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	cmd.orderID = orderID
	cmd.actorID = actorID
	cmd.actorRole = actorRole
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) OrderID() order.OrderID { return c.orderID }
func (c CancelOrderCommand) ActorID() kernel.UUID   { return c.actorID }
func (c CancelOrderCommand) ActorRole() user.Role   { return c.actorRole }
