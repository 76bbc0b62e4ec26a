package commands

import (
	"context"
	"time"

	"mparcel/internal/core/domain/model/order"
	"mparcel/internal/core/domain/model/user"
	"mparcel/internal/pkg/errs"
)

// AssignCourierCommandHandler assigns a courier to an order and enqueues
// the notification event for both the customer and the courier.
//
// A merchant may only assign couriers to their own orders; a foreign order
// is reported as not found rather than forbidden so order identifiers
// cannot be enumerated.
type AssignCourierCommandHandler struct {
	uowFactory UoWFactory
	now        func() time.Time
}

// NewAssignCourierCommandHandler creates a handler for courier assignment.
func NewAssignCourierCommandHandler(uowFactory UoWFactory) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle processes the assignment command.
func (h *AssignCourierCommandHandler) Handle(ctx context.Context, cmd AssignCourierCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if cmd.ActorRole() != user.RoleAdmin && !aggregate.IsOwnedBy(cmd.ActorID()) {
		return errs.NewObjectNotFoundError("orderId", cmd.OrderID().String())
	}

	courier, err := uow.UserRepository().Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}
	if !courier.IsCourier() {
		return errs.NewValueIsInvalidError("courierId")
	}

	if err = aggregate.Assign(courier.ID()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	event := order.NewCourierAssignedEvent(aggregate, courier.Name(), courier.Phone().String(), h.now())
	if err = uow.OutboxRepository().Add(ctx, event); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
