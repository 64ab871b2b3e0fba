// Package errs provides standardized error types for the order service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes error types for the validation and lookup scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a value falls outside its allowed bounds
//   - ObjectNotFoundError: For when an object cannot be found
//
// and for the failure kinds surfaced by the order lifecycle:
//   - PreconditionFailedError: An operation's guard does not hold (empty cart, wrong status)
//   - ConflictError: A concurrent writer changed the object first
//   - UpstreamFailureError: A collaborator (payment gateway, store) is unavailable
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// The lifecycle error types unwrap to both their sentinel and their cause, so
// errors.Is matches the failure kind as well as the specific domain reason.
package errs
