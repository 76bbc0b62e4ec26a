package commands

import (
	"errors"

	"mparcel/internal/core/domain/model/kernel"
	"mparcel/internal/core/domain/model/order"
	"mparcel/internal/core/domain/model/user"
	"mparcel/internal/pkg/guard"
)

var ErrDeleteOrderCommandIsNotConstructed = errors.New(
	"DeleteOrderCommand must be created via NewDeleteOrderCommand constructor",
)

// DeleteOrderCommand represents a request to remove an order entirely.
type DeleteOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   order.OrderID
	actorID   kernel.UUID
	actorRole user.Role

	guard guard.ConstructorGuard
}

// NewDeleteOrderCommand creates a command to delete an order on behalf of
// the given actor.
func NewDeleteOrderCommand(orderID order.OrderID, actorID kernel.UUID, actorRole user.Role) (DeleteOrderCommand, error) {
	cmd := DeleteOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		actorID.Validate(),
		actorRole.Validate(),
	); err != nil {
		return DeleteOrderCommand{}, err
	}

	cmd.orderID = orderID
	cmd.actorID = actorID
	cmd.actorRole = actorRole
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteOrderCommandIsNotConstructed)
}

func (c DeleteOrderCommand) OrderID() order.OrderID { return c.orderID }
func (c DeleteOrderCommand) ActorID() kernel.UUID   { return c.actorID }
func (c DeleteOrderCommand) ActorRole() user.Role   { return c.actorRole }
