package commands

import (
	"context"

	"mparcel/internal/core/domain/model/user"
	"mparcel/internal/pkg/errs"
)

// PanicBroadcaster fans an emergency alert out to every admin concurrently
// and reports how many sends succeeded.
type PanicBroadcaster interface {
	BroadcastPanic(ctx context.Context, courier *user.User, message string, admins []*user.User) int
}

// TriggerPanicCommandHandler raises a courier's emergency alert. The alert
// bypasses the outbox: it is sent immediately and concurrently to all
// admins, and the courier learns how many were reached. A position sent
// with the alert becomes the courier's last known location first, so the
// broadcast can include it.
type TriggerPanicCommandHandler struct {
	uowFactory  UserUoWFactory
	broadcaster PanicBroadcaster
}

// NewTriggerPanicCommandHandler creates a handler for emergency alerts.
func NewTriggerPanicCommandHandler(
	uowFactory UserUoWFactory,
	broadcaster PanicBroadcaster,
) TriggerPanicCommandHandler {
	return TriggerPanicCommandHandler{
		uowFactory:  uowFactory,
		broadcaster: broadcaster,
	}
}

// Handle processes the alert and returns the number of admins notified.
func (h *TriggerPanicCommandHandler) Handle(ctx context.Context, cmd TriggerPanicCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	userRepo := uow.UserRepository()
	courier, err := userRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return 0, err
	}
	if !courier.IsCourier() {
		return 0, errs.NewPermissionDeniedError("trigger panic alert")
	}

	if location := cmd.Location(); location != nil {
		if err = courier.ReportLocation(*location); err != nil {
			return 0, err
		}
		if err = userRepo.Update(ctx, courier); err != nil {
			return 0, err
		}
	}

	admins, err := userRepo.GetAllByRole(ctx, user.RoleAdmin)
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	// Sends happen outside the transaction; the read-only work above is
	// already committed.
	return h.broadcaster.BroadcastPanic(ctx, courier, cmd.Message(), admins), nil
}
