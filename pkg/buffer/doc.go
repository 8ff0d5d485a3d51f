// Package buffer provides a generic, thread-safe ring buffer with blocking and
// non-blocking producer/consumer operations, an optional overwrite mode,
// built-in statistics tracking, and optional Prometheus metrics integration.
//
// # Overview
//
// The buffer package implements a fixed-capacity FIFO ring buffer for managing
// data flow between producers and consumers in concurrent systems. Buffers are
// generic, thread-safe, and provide observability through always-on statistics
// and optional metrics.
//
// # Quick Start
//
// Basic buffer creation:
//
//	buf, err := buffer.NewRingBuffer[int](1000)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer buf.Close()
//
//	// Non-blocking producer
//	ok, err := buf.TryEnqueue(42)
//
//	// Non-blocking consumer
//	value, ok := buf.TryDequeue()
//
// Blocking forms wait on internal condition variables and are cancellable
// through context:
//
//	err := buf.Enqueue(ctx, 42)   // waits while full
//	v, err := buf.Dequeue(ctx)    // waits while empty
//
// With overwrite mode and metrics:
//
//	buf, err := buffer.NewRingBuffer[[]byte](5000,
//		buffer.WithOverwrite[[]byte](),
//		buffer.WithMetrics[[]byte](registry, "network_input"),
//	)
//
// # Overwrite Mode
//
// By default a full buffer rejects non-blocking enqueues (TryEnqueue returns
// false) and suspends blocking ones until a consumer frees a slot. With
// WithOverwrite(), a full buffer instead evicts its oldest unread item: the
// slot under the read cursor is displaced, the read cursor realigns with the
// post-increment write cursor, and the next read returns the new oldest
// element. The consumer loses the evicted item silently unless a
// WithDropCallback() is installed to observe it. In overwrite mode Enqueue
// never blocks.
//
// With capacity 1 the newly written element is immediately both the newest
// and the oldest item.
//
// # Error Model
//
// Capacity exhaustion and emptiness are not errors:
//
//   - TryEnqueue on a full non-overwrite buffer returns (false, nil)
//   - TryDequeue on an empty buffer returns (zero, false)
//
// Actual errors are classified through the streamkit errors package:
//
//   - construction with capacity < 1 fails with ErrInvalidCapacity
//   - enqueueing a nil pointer/map/slice/channel/function/interface fails
//     with ErrNilElement, since "no value" results are reserved for the
//     empty-buffer case
//   - operations on a closed buffer fail with ErrBufferClosed
//   - a cancelled blocking operation returns ctx.Err() with the buffer
//     unchanged
//
// Nothing is retried or logged internally; every outcome surfaces to the
// caller.
//
// # Thread Safety
//
// All operations are safe for concurrent use by any number of producers and
// consumers:
//
//   - Cursor, slot, and size state are guarded by a single mutex held for the
//     duration of one logical operation
//   - Blocking operations wait on two condition variables (not-empty,
//     not-full) and re-check their predicate in a loop after every wake, so
//     spurious wakeups and lost-wakeup races are handled
//   - Each successful operation signals one waiter of the complementary
//     class; Close and Clear broadcast
//   - Statistics use atomic operations (lock-free)
//
// # Observability
//
// Statistics (always on) track enqueues, dequeues, peeks, evictions,
// rejections, and size high-water marks via buf.Stats(). Prometheus metrics
// (optional, via WithMetrics) export the same operation counters plus size
// and utilization gauges, labelled with the component prefix, and maintain
// the toolkit-level active-buffer gauge.
//
// # Performance Characteristics
//
//   - TryEnqueue/TryDequeue/Peek/Size: O(1)
//   - DequeueBatch: O(n) where n is batch size
//   - Pre-allocated backing array, no allocations during operation
//   - Dequeued and evicted slots are cleared so the buffer does not pin
//     otherwise-dead values
package buffer
