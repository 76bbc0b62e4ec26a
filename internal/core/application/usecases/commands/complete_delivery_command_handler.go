package commands

import (
	"context"
	"time"

	"mparcel/internal/core/domain/model/order"
	"mparcel/internal/pkg/errs"
)

// CompleteDeliveryCommandHandler closes out an order in transit. Only the
// courier currently assigned to the order may confirm its outcome.
type CompleteDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

// NewCompleteDeliveryCommandHandler creates a handler for delivery
// confirmation.
func NewCompleteDeliveryCommandHandler(uowFactory OrderUoWFactory) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle processes the delivery confirmation command.
func (h *CompleteDeliveryCommandHandler) Handle(ctx context.Context, cmd CompleteDeliveryCommand) error {
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

	if !aggregate.IsAssignedTo(cmd.CourierID()) {
		return errs.NewPermissionDeniedError("complete delivery")
	}

	occurredAt := h.now()
	var eventType order.EventType
	switch cmd.Outcome() {
	case order.StatusDelivered:
		if err = aggregate.Deliver(cmd.ProofRef(), occurredAt); err != nil {
			return err
		}
		eventType = order.EventDeliveryCompleted
	default:
		// the proof must land before Cancel makes the order terminal
		if err = aggregate.SetDeliveryProof(cmd.ProofRef()); err != nil {
			return err
		}
		if err = aggregate.Cancel(); err != nil {
			return err
		}
		eventType = order.EventOrderCancelled
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if cmd.Outcome() == order.StatusDelivered {
		// cash on delivery settles through the conditional write; a payment
		// the gateway reconciled since the read above stays as it is
		if _, err = orderRepo.SettleCashOnDelivery(ctx, aggregate.ID()); err != nil {
			return err
		}
	}

	event := order.NewStatusEvent(eventType, aggregate, occurredAt)
	if err = uow.OutboxRepository().Add(ctx, event); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
