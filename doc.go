// Package streamkit provides building blocks for bounded producer/consumer
// pipelines: a generic, thread-safe ring buffer with blocking and
// non-blocking operations, classified error handling, Prometheus metrics
// integration, retry helpers, and a worker pool that drains a buffer.
//
// # Package Organization
//
//   - pkg/buffer: fixed-capacity ring buffer with optional overwrite mode,
//     condition-variable blocking, and context cancellation
//   - pkg/worker: generic worker pool consuming from a ring buffer
//   - pkg/retry: exponential backoff retry logic
//   - errors: three-class error classification (transient/invalid/fatal)
//   - metric: Prometheus metrics registry and exposition server
//
// # Quick Start
//
// Create a buffer and move data through it:
//
//	buf, err := buffer.NewRingBuffer[int](1024)
//	if err != nil {
//		return err
//	}
//	defer buf.Close()
//
//	ok, err := buf.TryEnqueue(42)  // non-blocking producer
//	v, err := buf.Dequeue(ctx)     // blocking consumer
//
// See the individual package documentation for details.
package streamkit
