// Package errs provides standardized error types for the order desk application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a value falls outside its allowed bounds
//   - ObjectNotFoundError: For when an object cannot be found
//   - PermissionDeniedError: For when an actor may not perform an action
//   - IllegalTransitionError: For when an order action is not legal from its status
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is works on every type
//
// PermissionDenied and IllegalTransition are the two recoverable outcomes of the
// authorization engine and the lifecycle state machine. Callers branch on them with
// errors.Is and map them to transport status codes at the edge.
package errs
