// Package order provides domain entities and business logic for delivery
// order management. It implements the Order aggregate root with lifecycle
// management and two independent state axes.
//
// The package includes:
//   - Order: the aggregate root covering creation, courier assignment,
//     editing, cancellation, delivery confirmation, and payment marking
//   - Status: the delivery lifecycle (Pending, InTransit, Delivered,
//     Cancelled) with an exhaustive central transition table
//   - PaymentStatus: the payment axis (Unpaid, Paid, Reconciled), mutated
//     independently of the delivery axis
//   - Metadata: a typed optional sub-structure (vehicle type, external
//     reference, payment method) merged field-by-field on partial update
//   - Event: domain events emitted on state changes, consumed by the
//     notification outbox dispatcher
//
// Delivered and Cancelled are terminal: once reached, every further mutation
// fails with a conflict. All guards live in this package; use cases never
// inspect raw status values.
package order
