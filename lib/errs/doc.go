// Package errs defines the shared error type and failure categories used
// throughout the module. Every error surfaced by the dictionary, the codec
// pipeline or a storage engine is (or wraps) an *errs.Error carrying one of
// the Kind constants.
//
// Core Functionality:
//   - A single error type (*Error) with kind, operation, key and cause
//   - Kind constants for the failure categories of the module
//   - Predicates (IsKeyNotFound, IsStorage, ...) for callers that only
//     care about the category
//
// Error Matching:
//
//	The type integrates with the errors package. Unwrap exposes the
//	underlying cause, and Is matches two *Error values by kind. Callers can
//	therefore use the predicates or errors.As, whichever fits their code:
//
//	    _, _, err := d.Get("missing")
//	    if errs.IsKeyNotFound(err) {
//	        // treat as absent
//	    }
//
// Thread Safety:
//
//	Errors are immutable after creation and safe to share across
//	goroutines.
package errs
