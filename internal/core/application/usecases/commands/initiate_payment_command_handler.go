package commands

import (
	"context"

	"mparcel/internal/core/domain/model/user"
	"mparcel/internal/core/ports"
	"mparcel/internal/pkg/errs"
)

// InitiatePaymentCommandHandler asks the payment gateway to prompt the
// customer's phone for the order amount. The checkout request identifier
// returned by the gateway is stored on the order so the asynchronous
// callback can be correlated exactly instead of by heuristic.
type InitiatePaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	gateway    ports.PaymentGateway
}

// NewInitiatePaymentCommandHandler creates a handler for payment initiation.
func NewInitiatePaymentCommandHandler(
	uowFactory OrderUoWFactory,
	gateway ports.PaymentGateway,
) InitiatePaymentCommandHandler {
	return InitiatePaymentCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
	}
}

// Handle processes the payment initiation command and returns the gateway's
// synchronous acknowledgement.
func (h *InitiatePaymentCommandHandler) Handle(
	ctx context.Context,
	cmd InitiatePaymentCommand,
) (ports.STKPushAck, error) {
	if err := cmd.Validate(); err != nil {
		return ports.STKPushAck{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ports.STKPushAck{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return ports.STKPushAck{}, err
	}

	if cmd.ActorRole() != user.RoleAdmin && !aggregate.IsOwnedBy(cmd.ActorID()) {
		return ports.STKPushAck{}, errs.NewPermissionDeniedError("initiate payment")
	}
	if aggregate.PaymentStatus().IsSettled() {
		return ports.STKPushAck{}, errs.NewConflictError("order is already paid")
	}

	ack, err := h.gateway.InitiateSTKPush(ctx, ports.STKPushRequest{
		Phone:   aggregate.CustomerPhone(),
		Amount:  aggregate.Amount(),
		OrderID: aggregate.ID(),
	})
	if err != nil {
		return ports.STKPushAck{}, err
	}

	if err = aggregate.AttachCheckoutRequest(ack.CheckoutRequestID); err != nil {
		return ports.STKPushAck{}, err
	}
	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return ports.STKPushAck{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ports.STKPushAck{}, err
	}

	return ack, nil
}
