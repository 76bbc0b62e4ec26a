package commands

import (
	"context"
	"log/slog"

	"mparcel/internal/core/domain/model/order"
)

// outboxBatchSize caps how many pending events one drain pass processes.
const outboxBatchSize = 50

// EventDispatcher turns a stored domain event into channel sends.
type EventDispatcher interface {
	Dispatch(ctx context.Context, event order.Event) error
}

// DispatchNotificationsCommandHandler drains the notification outbox. An
// entry whose dispatch fails stays pending and is retried on the next
// pass, so delivery is at-least-once.
type DispatchNotificationsCommandHandler struct {
	uowFactory OrderUoWFactory
	dispatcher EventDispatcher
	logger     *slog.Logger
}

// NewDispatchNotificationsCommandHandler creates a handler for outbox
// drain passes.
func NewDispatchNotificationsCommandHandler(
	uowFactory OrderUoWFactory,
	dispatcher EventDispatcher,
	logger *slog.Logger,
) DispatchNotificationsCommandHandler {
	return DispatchNotificationsCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		logger:     logger.With("component", "notification_outbox"),
	}
}

// Handle processes one drain pass.
func (h *DispatchNotificationsCommandHandler) Handle(ctx context.Context, cmd DispatchNotificationsCommand) error {
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

	outbox := uow.OutboxRepository()
	entries, err := outbox.GetPending(ctx, outboxBatchSize)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if err := h.dispatcher.Dispatch(ctx, entry.Event); err != nil {
			h.logger.Warn("event dispatch failed, leaving entry pending",
				"entryId", entry.ID,
				"eventType", entry.Event.Type,
				"orderId", entry.Event.OrderID,
				"cause", err)
			continue
		}
		if err := outbox.MarkSent(ctx, entry.ID); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
