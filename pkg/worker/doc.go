// Package worker provides a generic, thread-safe worker pool that drains a ring buffer.
//
// # Overview
//
// The worker package implements a production-ready worker pool pattern with:
//   - Generic type support (Go 1.18+) for type-safe work processing
//   - A ring-buffer work queue with backpressure (non-blocking submit)
//   - Context-aware cancellation and graceful shutdown
//   - Dual-tracking observability (always-on statistics + optional Prometheus metrics)
//   - Configurable worker count; queue sizing owned by the buffer
//
// # Core Concepts
//
// Worker Pool Pattern:
//
// The worker pool manages a fixed number of goroutines (workers) that drain
// work items from a bounded ring buffer. This pattern provides:
//   - Resource control: Fixed memory and goroutine overhead
//   - Backpressure: Buffer fills when workers can't keep up
//   - Load distribution: Work items distributed across workers
//   - Observability: Statistics on throughput, latency, and queue depth
//
// Buffer-Backed Queue:
//
// The work queue is a buffer.Buffer[T] supplied by the caller, so all buffer
// policies apply to staged work: capacity, overwrite mode (newest work evicts
// the oldest staged item instead of being rejected), and drop callbacks for
// observing what was displaced.
//
//	buf, err := buffer.NewRingBuffer[MessageTask](1000)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	pool := worker.NewPool(
//	    10,   // workers
//	    buf,  // work queue
//	    func(ctx context.Context, task MessageTask) error {
//	        // Process task
//	        return nil
//	    },
//	)
//
// Dual-Tracking Observability:
//
// Following the toolkit pattern:
//   - Statistics: ALWAYS tracked using atomic operations (zero-allocation)
//   - Metrics: OPTIONAL Prometheus metrics for external monitoring
//
// # Architecture Decisions
//
// Non-Blocking Submit with Backpressure:
//
// Submit() stages work with the buffer's non-blocking enqueue rather than
// waiting for queue space. This provides:
//   - Predictable latency: Callers never block waiting for queue space
//   - Clear semantics: ErrQueueFull indicates system overload
//   - Backpressure signal: Dropped work indicates workers can't keep up
//
// Callers who want waiting semantics can enqueue into the buffer directly
// with Enqueue(ctx, work); workers drain the buffer regardless of how work
// got in.
//
// Context-Based Cancellation:
//
// Workers block on the buffer's cancellable Dequeue with the context from
// Start(). This enables:
//   - Clean shutdown: In-flight work completes, no new work starts
//   - Timeout enforcement: Caller can use context.WithTimeout
//   - Cancellation propagation: Work processors receive same context
//
// Graceful Shutdown with Timeout:
//
// Stop(timeout) provides best-effort graceful shutdown:
//  1. Close the work buffer (no new submissions)
//  2. Workers drain remaining staged items
//  3. Wait for all workers with timeout
//  4. Return ErrStopTimeout if workers don't finish
//
// # Usage Examples
//
// Basic Worker Pool:
//
//	buf, _ := buffer.NewRingBuffer[Job](100)
//	pool := worker.NewPool(5, buf, func(ctx context.Context, job Job) error {
//	    log.Printf("Processing job %d: %s", job.ID, job.Data)
//	    return nil
//	})
//
//	ctx := context.Background()
//	if err := pool.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer pool.Stop(5 * time.Second)
//
//	for i := 0; i < 1000; i++ {
//	    if err := pool.Submit(Job{ID: i}); err != nil {
//	        if errors.Is(err, worker.ErrQueueFull) {
//	            // Queue full - implement backoff or reject request
//	        }
//	    }
//	}
//
// With Prometheus Metrics:
//
//	registry := metric.NewMetricsRegistry()
//
//	pool := worker.NewPool(
//	    10, buf, processJob,
//	    worker.WithMetricsRegistry[Job](registry, "message_processor"),
//	)
//
//	// Metrics exposed:
//	// - message_processor_queue_depth (staged work items)
//	// - message_processor_utilization (queue depth / buffer capacity)
//	// - message_processor_submitted_total (total submitted)
//	// - message_processor_processed_total (total processed)
//	// - message_processor_failed_total (total failed)
//	// - message_processor_dropped_total (total rejected when full)
//	// - message_processor_processing_duration_seconds (histogram by status)
//
// Retry on Queue Full:
//
//	cfg := retry.Quick() // Fast retries with exponential backoff
//	err := retry.Do(ctx, cfg, func() error {
//	    return pool.Submit(job)
//	})
//
// # Thread Safety
//
// All public methods are safe for concurrent use. Submit, Start, and Stop are
// protected by the lifecycle mutex; Stats uses atomic loads plus the buffer's
// own synchronized size. Statistics use atomic operations; Prometheus metric
// objects are thread-safe by design.
//
// Lifecycle guarantees:
//   - Start() can only be called once
//   - Submit() fails if not started or already stopped
//   - Stop() is idempotent (safe to call multiple times)
//   - Workers complete in-flight work before exiting
//
// # Error Handling
//
// The worker package uses standard sentinel errors (not the toolkit's error
// classification) because pool errors are always programming errors or
// resource exhaustion:
//
//   - ErrPoolNotStarted: Programming error (Submit before Start)
//   - ErrPoolAlreadyStarted: Programming error (Start called twice)
//   - ErrPoolStopped: Expected after Stop() called
//   - ErrQueueFull: Resource exhaustion (backpressure signal)
//   - ErrNilProcessor, ErrNilBuffer: Programming errors (validation failures)
//   - ErrStopTimeout: Resource exhaustion (workers stuck)
//
// Submit can additionally surface the buffer's classified errors, such as a
// nil work item or a closed buffer. Processor functions can return classified
// errors and the pool tracks them in the failed counter without interpreting
// them.
//
// # Known Limitations
//
//  1. No per-work-item timeout: Implement in processor function
//  2. No priority queues: All work processed FIFO
//  3. No work cancellation: Can't cancel individual staged items
//  4. Queue depth metrics: 1-second granularity (ticker-based)
//  5. No dynamic worker scaling: Worker count is fixed
//
// These are design decisions, not bugs. The package prioritizes simplicity,
// predictability, and correctness over feature richness.
//
// # See Also
//
//   - buffer package: The ring buffer backing the work queue
//   - retry package: For retry logic with exponential backoff
//   - metric package: For toolkit metrics integration
package worker
