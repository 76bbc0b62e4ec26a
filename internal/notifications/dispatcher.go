package notifications

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"mparcel/internal/core/domain/model/kernel"
	"mparcel/internal/core/domain/model/order"
	"mparcel/internal/core/domain/model/user"
	"mparcel/internal/core/ports"
	"mparcel/internal/pkg/errs"
)

// Dispatcher routes rendered messages to the preferred channel, falling back
// to SMS when that channel fails. It implements both the outbox event
// dispatcher and the panic broadcaster used by the command handlers.
type Dispatcher struct {
	preferred ports.NotificationChannel
	fallback  ports.NotificationChannel
	logger    *slog.Logger
}

// NewDispatcher wires a preferred channel and an optional SMS fallback.
// Pass nil as fallback to disable it.
func NewDispatcher(preferred ports.NotificationChannel, fallback ports.NotificationChannel, logger *slog.Logger) (*Dispatcher, error) {
	if preferred == nil {
		return nil, errs.NewValueIsRequiredError("preferred")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	return &Dispatcher{
		preferred: preferred,
		fallback:  fallback,
		logger:    logger.With("component", "notifications"),
	}, nil
}

// Send delivers one message, trying the preferred channel first. The SMS
// fallback fires at most once and only when the preferred channel is not
// already SMS.
func (d *Dispatcher) Send(ctx context.Context, recipient kernel.Phone, message string) error {
	err := d.preferred.Send(ctx, recipient, message)
	if err == nil {
		return nil
	}

	if d.fallback == nil || d.preferred.Channel() == ports.ChannelSMS {
		return err
	}

	d.logger.Warn("preferred channel failed, falling back to sms",
		"channel", string(d.preferred.Channel()),
		"error", err)

	return d.fallback.Send(ctx, recipient, message)
}

// sendSMS delivers one message on the SMS channel directly, without the
// preferred-then-fallback routing. When no SMS channel is wired the
// preferred channel carries it so the message is not lost.
func (d *Dispatcher) sendSMS(ctx context.Context, recipient kernel.Phone, message string) error {
	channel := d.preferred
	if channel.Channel() != ports.ChannelSMS && d.fallback != nil {
		channel = d.fallback
	}
	return channel.Send(ctx, recipient, message)
}

// Dispatch turns one outbox event into channel sends. Assignment events
// message both the customer and the courier; the courier's briefing goes
// out as a single SMS. A failure on either side fails the dispatch so the
// outbox retries it.
func (d *Dispatcher) Dispatch(ctx context.Context, event order.Event) error {
	customerPhone, err := kernel.NewPhone(event.CustomerPhone)
	if err != nil {
		// the phone was validated on the way in, so this is unrecoverable;
		// returning the error would retry forever
		d.logger.Error("dropping event with unusable customer phone",
			"orderId", event.OrderID,
			"eventType", string(event.Type),
			"error", err)
		return nil
	}

	if err := d.Send(ctx, customerPhone, customerMessage(event)); err != nil {
		return err
	}

	if event.Type == order.EventCourierAssigned && event.CourierPhone != "" {
		courierPhone, err := kernel.NewPhone(event.CourierPhone)
		if err != nil {
			d.logger.Error("skipping courier briefing with unusable phone",
				"orderId", event.OrderID,
				"error", err)
			return nil
		}

		if err := d.sendSMS(ctx, courierPhone, courierAssignmentMessage(event)); err != nil {
			return err
		}
	}

	return nil
}

// BroadcastPanic fans the alert out to all admins concurrently and reports
// how many were reached. Partial delivery is acceptable; failures are logged
// and do not stop the rest of the broadcast.
func (d *Dispatcher) BroadcastPanic(ctx context.Context, courier *user.User, message string, admins []*user.User) int {
	alert := panicMessage(courier, message)

	var delivered atomic.Int64
	var wg sync.WaitGroup

	for _, admin := range admins {
		wg.Add(1)
		go func(admin *user.User) {
			defer wg.Done()

			if err := d.Send(ctx, admin.Phone(), alert); err != nil {
				d.logger.Error("panic alert delivery failed",
					"adminId", admin.ID().String(),
					"error", err)
				return
			}

			delivered.Add(1)
		}(admin)
	}

	wg.Wait()
	return int(delivered.Load())
}
