package ports

import (
	"context"
	"time"

	"mparcel/internal/core/domain/model/order"
)

// OutboxEntry is a stored domain event awaiting dispatch. The entry is
// written in the same transaction as the state change it describes, so a
// notification is enqueued if and only if the change committed.
type OutboxEntry struct {
	ID        int64
	Event     order.Event
	CreatedAt time.Time
}

// OutboxRepository defines the persistence contract for the notification
// outbox.
type OutboxRepository interface {
	// Add enqueues a domain event for later dispatch.
	Add(ctx context.Context, event order.Event) error

	// GetPending retrieves undispatched entries in insertion order,
	// capped at limit.
	GetPending(ctx context.Context, limit int) ([]OutboxEntry, error)

	// MarkSent records that an entry has been dispatched.
	MarkSent(ctx context.Context, id int64) error
}
