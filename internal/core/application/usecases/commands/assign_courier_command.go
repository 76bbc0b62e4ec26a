package commands

import (
	"errors"

	"mparcel/internal/core/domain/model/kernel"
	"mparcel/internal/core/domain/model/order"
	"mparcel/internal/core/domain/model/user"
	"mparcel/internal/pkg/guard"
)

var ErrAssignCourierCommandIsNotConstructed = errors.New(
	"AssignCourierCommand must be created via NewAssignCourierCommand constructor",
)

// AssignCourierCommand represents a request to put an order in the hands of
// a specific courier, moving it into transit.
type AssignCourierCommand struct { //nolint:recvcheck //using for validation
	orderID   order.OrderID
	courierID kernel.UUID
	actorID   kernel.UUID
	actorRole user.Role

	guard guard.ConstructorGuard
}

// NewAssignCourierCommand creates a command to assign a courier to an order
// on behalf of the given actor.
func NewAssignCourierCommand(
	orderID order.OrderID,
	courierID kernel.UUID,
	actorID kernel.UUID,
	actorRole user.Role,
) (AssignCourierCommand, error) {
	cmd := AssignCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		courierID.Validate(),
		actorID.Validate(),
		actorRole.Validate(),
	); err != nil {
		return AssignCourierCommand{}, err
	}

	cmd.orderID = orderID
	cmd.courierID = courierID
	cmd.actorID = actorID
	cmd.actorRole = actorRole
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignCourierCommand) Validate() error {
	return c.guard.Validate(ErrAssignCourierCommandIsNotConstructed)
}

func (c AssignCourierCommand) OrderID() order.OrderID { return c.orderID }
func (c AssignCourierCommand) CourierID() kernel.UUID { return c.courierID }
func (c AssignCourierCommand) ActorID() kernel.UUID   { return c.actorID }
func (c AssignCourierCommand) ActorRole() user.Role   { return c.actorRole }
