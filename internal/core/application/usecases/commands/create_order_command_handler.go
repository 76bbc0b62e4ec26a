package commands

import (
	"context"
	"time"

	"mparcel/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// New orders start in Pending status with payment Unpaid, and an
// OrderCreated event is enqueued in the same transaction.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle processes the order creation command and returns the generated
// order identifier.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (order.OrderID, error) {
	if err := cmd.Validate(); err != nil {
		return order.OrderID{}, err
	}

	createdAt := h.now()
	aggregate, err := order.NewOrder(
		order.NewOrderID(createdAt),
		cmd.CustomerName(),
		cmd.CustomerPhone(),
		cmd.PickupAddress(),
		cmd.DropoffAddress(),
		cmd.Amount(),
		cmd.MerchantID(),
		cmd.Metadata(),
		createdAt,
	)
	if err != nil {
		return order.OrderID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return order.OrderID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return order.OrderID{}, err
	}

	event := order.NewStatusEvent(order.EventOrderCreated, aggregate, createdAt)
	if err = uow.OutboxRepository().Add(ctx, event); err != nil {
		return order.OrderID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return order.OrderID{}, err
	}

	return aggregate.ID(), nil
}
