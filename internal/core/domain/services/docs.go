// Package services provides domain services that orchestrate business
// operations across multiple domain entities in the delivery system. It
// implements business logic that doesn't naturally belong to a single
// aggregate root.
//
// The package includes:
//   - PaymentMatcher: correlates an asynchronous payment-gateway callback
//     with the unpaid order it most plausibly pays for
//
// Domain services are pure: they operate on candidate sets loaded by the
// application layer and never touch I/O themselves.
package services
