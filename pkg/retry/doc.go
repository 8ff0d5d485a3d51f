// Package retry provides simple exponential backoff retry logic for transient failures.
//
// # Overview
//
// This package offers a minimal retry mechanism with exponential backoff, designed
// to handle transient failures in resource initialization and pipeline startup.
//
// # Core Functions
//
//   - Do: Execute function with retry and exponential backoff
//   - DoWithResult: Execute function with retry, returns both result and error
//
// # Configuration Presets
//
//   - DefaultConfig(): 3 attempts, 100ms-5s delay (normal operations)
//   - Quick(): 10 attempts, 50ms-1s delay (component startup)
//   - Persistent(): 30 attempts, 200ms-10s delay (critical resources)
//
// # Usage Examples
//
// Basic retry with defaults:
//
//	err := retry.Do(ctx, retry.DefaultConfig(), func() error {
//	    return pool.Start(ctx)
//	})
//
// Retry with result:
//
//	buf, err := retry.DoWithResult(ctx, retry.Quick(), func() (buffer.Buffer[int], error) {
//	    return buffer.NewRingBuffer[int](1024, buffer.WithMetrics[int](registry, "ingest"))
//	})
//
// Marking an error as non-retryable:
//
//	err := retry.Do(ctx, cfg, func() error {
//	    if badInput {
//	        return retry.NonRetryable(errValidation)
//	    }
//	    return doWork()
//	})
//
// # Design Philosophy
//
// This package is intentionally minimal:
//
//   - No circuit breakers (use a separate package)
//   - No metrics collection (use instrumentation at call site)
//   - No complex error classification (caller decides what to retry)
//   - Just exponential backoff with jitter
//
// # Context Cancellation
//
// All retry operations respect context cancellation and will immediately stop
// retrying when the context is cancelled, either during operation execution or
// during backoff delay.
//
// # Thread Safety
//
// All functions are safe for concurrent use. Jitter uses math/rand/v2, which is
// safe for concurrent callers without additional locking.
package retry
