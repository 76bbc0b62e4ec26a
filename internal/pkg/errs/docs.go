// Package errs provides standardized error types for the delivery application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package defines one error type per failure class in the service taxonomy:
//   - ValueIsRequiredError / ValueIsInvalidError: malformed or missing input
//   - ObjectNotFoundError: no record matched the identifier
//   - PermissionDeniedError: caller lacks ownership or role
//   - ConflictError: operation violates a state invariant
//   - UpstreamError: an external collaborator failed or rejected the call
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is matches the sentinel
//
// Classification happens exclusively through errors.Is against the sentinels;
// transport adapters own the mapping from class to wire status.
package errs
