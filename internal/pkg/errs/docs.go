// Package errs provides standardized error types for the fulfillment engine.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// Two groups of errors live here:
//
// General-purpose errors shared by all layers:
//   - ValueIsRequiredError: for when a required value is missing
//   - ValueIsInvalidError: for when a value is invalid
//   - ObjectNotFoundError: for when an object cannot be found
//
// Workflow errors classifying external-call outcomes:
//   - TransportError: network/server failure on an external call; transient,
//     retried up to a stage-specific bound
//   - ValidationError: structural or content mismatch after a successful
//     call; never retried, always escalated
//   - RetryExhaustedError: retry budget consumed without reaching a terminal
//     outcome; escalated
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrTransport)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel for errors.Is classification
//
// A cancellation reported by the marketplace is deliberately not an error
// type: it is a valid terminal outcome recorded on the status ledger without
// escalation.
package errs
