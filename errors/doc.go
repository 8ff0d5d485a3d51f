// Package errors provides standardized error handling patterns for StreamKit components.
//
// # Overview
//
// The errors package implements a three-class error classification system:
// Transient (temporary, retryable), Invalid (bad input, non-retryable), and
// Fatal (unrecoverable, stop processing).
//
// This classification enables intelligent error handling strategies throughout
// StreamKit, allowing components to make informed decisions about retries,
// graceful degradation, and failure recovery without hardcoded error string
// matching.
//
// # Error Classification
//
// Errors are automatically classified based on their type or content:
//
//   - Transient: timeouts, temporary unavailability, cancellation (retry recommended)
//   - Invalid: malformed input, validation failures, bad configuration (do not retry)
//   - Fatal: resource exhaustion, unrecoverable states (stop processing)
//
// The classification system integrates seamlessly with Go's standard error
// handling patterns, supporting errors.Is(), errors.As(), and error wrapping
// chains.
//
// # Quick Start
//
// Use standard error variables for known conditions:
//
//	if capacity < 1 {
//	    return errors.ErrInvalidCapacity
//	}
//
// Wrap errors with component context for debugging:
//
//	if err := buf.Close(); err != nil {
//	    return errors.Wrap(err, "Pipeline", "Shutdown", "buffer close")
//	}
//
// Check classification for retry logic:
//
//	if err := operation(); err != nil {
//	    if errors.IsTransient(err) {
//	        cfg := errors.DefaultRetryConfig()
//	        return retry.Do(ctx, cfg.ToRetryConfig(), operation)
//	    }
//	    return err
//	}
//
// # Error Wrapping Pattern
//
// All error wrapping follows the standardized format:
//
//	"component.method: action failed: <underlying error>"
//
// WrapTransient, WrapInvalid, and WrapFatal additionally attach the
// classification so downstream handlers can dispatch on it with errors.As.
package errors
