package commands

import (
	"context"
	"time"

	"mparcel/internal/core/domain/model/order"
	"mparcel/internal/core/domain/model/user"
	"mparcel/internal/pkg/errs"
)

// EditOrderCommandHandler applies partial updates to an order. Merchants may
// edit their own orders; admins may edit any. Courier changes ride on the
// same command because they shift delivery status as a side effect.
type EditOrderCommandHandler struct {
	uowFactory UoWFactory
	now        func() time.Time
}

// NewEditOrderCommandHandler creates a handler for order edit operations.
func NewEditOrderCommandHandler(uowFactory UoWFactory) EditOrderCommandHandler {
	return EditOrderCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle processes the edit command.
func (h *EditOrderCommandHandler) Handle(ctx context.Context, cmd EditOrderCommand) error {
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
		return errs.NewPermissionDeniedError("edit order")
	}

	if err = h.applyPatch(aggregate, cmd); err != nil {
		return err
	}

	var event *order.Event
	if cmd.CourierID() != nil {
		event, err = h.assignCourier(ctx, uow, aggregate, cmd)
		if err != nil {
			return err
		}
	}
	if cmd.ClearCourier() {
		if err = aggregate.ClearCourier(); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}
	if event != nil {
		if err = uow.OutboxRepository().Add(ctx, *event); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

func (h *EditOrderCommandHandler) applyPatch(aggregate *order.Order, cmd EditOrderCommand) error {
	if cmd.CustomerName() != nil {
		if err := aggregate.SetCustomerName(*cmd.CustomerName()); err != nil {
			return err
		}
	}
	if cmd.CustomerPhone() != nil {
		if err := aggregate.SetCustomerPhone(*cmd.CustomerPhone()); err != nil {
			return err
		}
	}
	if cmd.PickupAddress() != nil {
		if err := aggregate.SetPickupAddress(*cmd.PickupAddress()); err != nil {
			return err
		}
	}
	if cmd.DropoffAddress() != nil {
		if err := aggregate.SetDropoffAddress(*cmd.DropoffAddress()); err != nil {
			return err
		}
	}
	if cmd.Amount() != nil {
		if err := aggregate.SetAmount(*cmd.Amount()); err != nil {
			return err
		}
	}
	if cmd.Metadata() != nil {
		if err := aggregate.MergeMetadata(*cmd.Metadata()); err != nil {
			return err
		}
	}
	return nil
}

func (h *EditOrderCommandHandler) assignCourier(
	ctx context.Context,
	uow UoW,
	aggregate *order.Order,
	cmd EditOrderCommand,
) (*order.Event, error) {
	courier, err := uow.UserRepository().Get(ctx, *cmd.CourierID())
	if err != nil {
		return nil, err
	}
	if !courier.IsCourier() {
		return nil, errs.NewValueIsInvalidError("courierId")
	}

	if err = aggregate.Assign(courier.ID()); err != nil {
		return nil, err
	}

	event := order.NewCourierAssignedEvent(aggregate, courier.Name(), courier.Phone().String(), h.now())
	return &event, nil
}
