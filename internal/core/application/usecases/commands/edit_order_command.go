package commands

import (
	"errors"
	"fmt"

	"mparcel/internal/core/domain/model/kernel"
	"mparcel/internal/core/domain/model/order"
	"mparcel/internal/core/domain/model/user"
	"mparcel/internal/pkg/errs"
	"mparcel/internal/pkg/guard"
)

var ErrEditOrderCommandIsNotConstructed = errors.New(
	"EditOrderCommand must be created via NewEditOrderCommand constructor",
)

// EditOrderCommand represents a partial update to an existing order. Nil
// fields are left unchanged. Setting a courier moves the order into transit;
// clearing one returns it to Pending.
type EditOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   order.OrderID
	actorID   kernel.UUID
	actorRole user.Role

	customerName   *string
	customerPhone  *kernel.Phone
	pickupAddress  *string
	dropoffAddress *string
	amount         *kernel.Money
	metadata       *order.Metadata
	courierID      *kernel.UUID
	clearCourier   bool

	guard guard.ConstructorGuard
}

// EditOrderPatch bundles the optional fields of an edit. A nil pointer means
// "leave as is".
type EditOrderPatch struct {
	CustomerName   *string
	CustomerPhone  *kernel.Phone
	PickupAddress  *string
	DropoffAddress *string
	Amount         *kernel.Money
	Metadata       *order.Metadata
	CourierID      *kernel.UUID
	ClearCourier   bool
}

// NewEditOrderCommand creates a command to patch an order on behalf of the
// given actor. Setting and clearing the courier in the same request is
// rejected.
func NewEditOrderCommand(
	orderID order.OrderID,
	actorID kernel.UUID,
	actorRole user.Role,
	patch EditOrderPatch,
) (EditOrderCommand, error) {
	cmd := EditOrderCommand{
		customerName:   patch.CustomerName,
		customerPhone:  patch.CustomerPhone,
		pickupAddress:  patch.PickupAddress,
		dropoffAddress: patch.DropoffAddress,
		amount:         patch.Amount,
		metadata:       patch.Metadata,
		courierID:      patch.CourierID,
		clearCourier:   patch.ClearCourier,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actorID, actorRole),
	); err != nil {
		return EditOrderCommand{}, err
	}

	if patch.CourierID != nil && patch.ClearCourier {
		return EditOrderCommand{}, errs.NewValueIsInvalidErrorWithCause("courierId",
			fmt.Errorf("cannot set and clear the courier in one request"))
	}
	if patch.CourierID != nil {
		if err := patch.CourierID.Validate(); err != nil {
			return EditOrderCommand{}, err
		}
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c EditOrderCommand) Validate() error {
	return c.guard.Validate(ErrEditOrderCommandIsNotConstructed)
}

func (c EditOrderCommand) OrderID() order.OrderID { return c.orderID }
func (c EditOrderCommand) ActorID() kernel.UUID   { return c.actorID }
func (c EditOrderCommand) ActorRole() user.Role   { return c.actorRole }

func (c EditOrderCommand) CustomerName() *string        { return c.customerName }
func (c EditOrderCommand) CustomerPhone() *kernel.Phone { return c.customerPhone }
func (c EditOrderCommand) PickupAddress() *string       { return c.pickupAddress }
func (c EditOrderCommand) DropoffAddress() *string      { return c.dropoffAddress }
func (c EditOrderCommand) Amount() *kernel.Money        { return c.amount }
func (c EditOrderCommand) Metadata() *order.Metadata    { return c.metadata }
func (c EditOrderCommand) CourierID() *kernel.UUID      { return c.courierID }
func (c EditOrderCommand) ClearCourier() bool           { return c.clearCourier }

func (c *EditOrderCommand) setOrderID(orderID order.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *EditOrderCommand) setActor(actorID kernel.UUID, actorRole user.Role) error {
	if err := errors.Join(actorID.Validate(), actorRole.Validate()); err != nil {
		return err
	}
	c.actorID = actorID
	c.actorRole = actorRole
	return nil
}
