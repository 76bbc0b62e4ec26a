package commands

import (
	"context"
	"time"

	"mparcel/internal/core/domain/model/order"
	"mparcel/internal/core/domain/model/user"
	"mparcel/internal/pkg/errs"
)

// CancelOrderCommandHandler cancels an order. Cancellation is terminal;
// terminal orders reject it with a conflict, which the transition table in
// the order aggregate enforces.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle processes the cancellation command.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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
		return errs.NewPermissionDeniedError("cancel order")
	}

	if err = aggregate.Cancel(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	event := order.NewStatusEvent(order.EventOrderCancelled, aggregate, h.now())
	if err = uow.OutboxRepository().Add(ctx, event); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
