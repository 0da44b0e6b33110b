// Package errs defines the error taxonomy used across the fulfillment
// service. Every kind pairs a sentinel (for errors.Is checks) with a struct
// type carrying the details, a constructor with and without a cause, and an
// Unwrap method so wrapped causes stay reachable.
//
// Validation kinds (ValueIsRequiredError, ValueIsInvalidError,
// ValueIsOutOfRangeError) map to HTTP 400, ObjectNotFoundError to 404,
// ForbiddenError to 403, and ConflictError and InvalidTransitionError to 409.
// The HTTP adapter owns that mapping; core code only picks the kind.
package errs
