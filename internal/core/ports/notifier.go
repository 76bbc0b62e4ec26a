package ports

import (
	"context"

	"mparcel/internal/core/domain/model/kernel"
)

// Channel identifies a message delivery channel.
type Channel string

const (
	ChannelSMS      Channel = "sms"
	ChannelWhatsApp Channel = "whatsapp"
)

// NotificationChannel can deliver a text message to a phone number over a
// single transport.
type NotificationChannel interface {
	// Channel reports which transport this implementation uses.
	Channel() Channel

	// Send delivers a message to the recipient. A non-nil error means
	// the message did not reach the transport; callers may retry on a
	// different channel.
	Send(ctx context.Context, recipient kernel.Phone, message string) error
}
