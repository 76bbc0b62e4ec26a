package commands

import (
	"context"
	"log/slog"
	"time"

	"mparcel/internal/core/domain/model/kernel"
	"mparcel/internal/core/domain/model/order"
	"mparcel/internal/core/domain/services"
)

// unpaidCandidateLimit caps how many unsettled orders are loaded as
// reconciliation candidates per callback.
const unpaidCandidateLimit = 100

// ReconcilePaymentCommandHandler settles an order's payment from a gateway
// callback.
//
// A callback that matches no order is logged and swallowed: the gateway
// retries on non-2xx responses and the money has already moved, so failing
// the request buys nothing. Infrastructure errors are returned so the
// gateway's retry can run the reconciliation again.
//
// The settle itself is a conditional write. When two callbacks race for the
// same order, exactly one wins; the loser is logged and dropped without
// overwriting the stored receipt.
type ReconcilePaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	matcher    services.PaymentMatcher
	logger     *slog.Logger
	now        func() time.Time
}

// NewReconcilePaymentCommandHandler creates a handler for payment callbacks.
func NewReconcilePaymentCommandHandler(
	uowFactory OrderUoWFactory,
	matcher services.PaymentMatcher,
	logger *slog.Logger,
) ReconcilePaymentCommandHandler {
	return ReconcilePaymentCommandHandler{
		uowFactory: uowFactory,
		matcher:    matcher,
		logger:     logger.With("component", "payment_reconciliation"),
		now:        time.Now,
	}
}

// Handle processes the callback command.
func (h *ReconcilePaymentCommandHandler) Handle(ctx context.Context, cmd ReconcilePaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if !cmd.Succeeded() {
		h.logger.Info("payment prompt was not completed",
			"checkoutRequestId", cmd.CheckoutRequestID(),
			"resultCode", cmd.ResultCode(),
			"resultDescription", cmd.ResultDescription())
		return nil
	}

	details := h.paymentDetails(cmd)

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	candidates, err := orderRepo.GetUnpaid(ctx, unpaidCandidateLimit)
	if err != nil {
		return err
	}

	matched := h.matcher.Match(details, candidates)
	if matched == nil {
		h.logger.Warn("no unpaid order matched payment callback",
			"checkoutRequestId", cmd.CheckoutRequestID(),
			"receipt", cmd.Receipt(),
			"amount", cmd.Amount(),
			"phone", cmd.Phone(),
			"candidates", len(candidates),
			"recentUnpaid", recentCandidateIDs(candidates))
		return nil
	}

	won, err := orderRepo.MarkPaid(ctx, matched.ID(), cmd.Receipt())
	if err != nil {
		return err
	}
	if !won {
		h.logger.Info("order was already settled, dropping duplicate callback",
			"orderId", matched.ID().String(),
			"receipt", cmd.Receipt())
		return nil
	}

	if err = matched.Reconcile(cmd.Receipt()); err != nil {
		return err
	}

	event := order.NewStatusEvent(order.EventPaymentReconciled, matched, h.now())
	if err = uow.OutboxRepository().Add(ctx, event); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.Info("payment reconciled",
		"orderId", matched.ID().String(),
		"receipt", cmd.Receipt(),
		"amount", cmd.Amount())
	return nil
}

// recentCandidateIDs lists the newest unpaid order identifiers for the
// no-match diagnostic.
func recentCandidateIDs(candidates []*order.Order) []string {
	const limit = 5

	ids := make([]string, 0, limit)
	for _, candidate := range candidates {
		if len(ids) == limit {
			break
		}
		ids = append(ids, candidate.ID().String())
	}
	return ids
}

// paymentDetails converts callback fields into domain values. The payer
// phone and amount feed the heuristic fallback only, so malformed values
// degrade matching to the checkout request identifier instead of failing
// the callback.
func (h *ReconcilePaymentCommandHandler) paymentDetails(cmd ReconcilePaymentCommand) services.PaymentDetails {
	details := services.PaymentDetails{
		CheckoutRequestID: cmd.CheckoutRequestID(),
		Receipt:           cmd.Receipt(),
	}

	if amount, err := kernel.NewMoney(cmd.Amount()); err == nil {
		details.Amount = amount
	}
	if phone, err := kernel.NewPhone(cmd.Phone()); err == nil {
		details.PayerPhone = phone
	} else {
		h.logger.Warn("callback payer phone is malformed",
			"checkoutRequestId", cmd.CheckoutRequestID(),
			"cause", err)
	}

	return details
}
