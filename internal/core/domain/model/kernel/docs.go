// Package kernel provides core domain primitives for the delivery system.
// It implements fundamental building blocks following Domain-Driven Design
// principles that are used throughout the domain model.
//
// The package includes:
//   - UUID: identity value object for users, wrapping github.com/google/uuid
//   - Phone: a phone number normalized to canonical international format,
//     the correlation signal for payment reconciliation and the address
//     for every notification send
//   - Money: a whole-unit KES amount used for order pricing and payment matching
//   - GeoLocation: a latitude/longitude pair for courier positions
//
// All types are immutable value objects created through validating
// constructors; the zero value of each type fails Validate.
package kernel
