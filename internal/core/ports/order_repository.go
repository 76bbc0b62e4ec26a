// Package ports defines the contracts between the application core and the
// infrastructure adapters. Repositories cover persistence; the gateway and
// notifier interfaces cover outbound integrations.
package ports

import (
	"context"

	"mparcel/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate. Payment
	// settlement fields are not written here: a stale aggregate read
	// before a concurrent callback committed must not overwrite the
	// settled status or receipt. They change only through the
	// conditional writes below.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its identifier.
	// Returns an ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id order.OrderID) (*order.Order, error)

	// GetAll retrieves every order, most recently created first.
	GetAll(ctx context.Context) ([]*order.Order, error)

	// GetByMerchant retrieves the orders created by a single merchant,
	// most recently created first. The merchant identifier is passed in
	// string form as stored.
	GetByMerchant(ctx context.Context, merchantID string) ([]*order.Order, error)

	// GetByCourier retrieves the orders currently assigned to a courier.
	GetByCourier(ctx context.Context, courierID string) ([]*order.Order, error)

	// GetUnpaid retrieves orders whose payment status is not yet settled,
	// most recently created first, capped at limit. These are the
	// candidates a payment callback can be reconciled against.
	GetUnpaid(ctx context.Context, limit int) ([]*order.Order, error)

	// MarkPaid settles an order's payment atomically. The write succeeds
	// only if the order is still unsettled at the time of the update;
	// the returned bool reports whether this call won the write. A false
	// result with a nil error means another callback settled the order
	// first and the receipt must not be applied again.
	MarkPaid(ctx context.Context, id order.OrderID, receipt string) (bool, error)

	// SettleCashOnDelivery defaults an order's payment to Paid when the
	// courier confirms delivery. Conditional like MarkPaid: a payment the
	// gateway settled in the meantime is left untouched, receipt included,
	// and the call reports false.
	SettleCashOnDelivery(ctx context.Context, id order.OrderID) (bool, error)

	// Delete removes an order from storage.
	Delete(ctx context.Context, id order.OrderID) error
}
