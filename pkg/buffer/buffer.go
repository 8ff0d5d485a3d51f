// Package buffer provides a generic, thread-safe ring buffer with blocking and
// non-blocking operations and an optional overwrite mode.
//
// The ring buffer has a fixed capacity set at construction. Producers and
// consumers may mix non-blocking operations (TryEnqueue, TryDequeue) with
// blocking ones (Enqueue, Dequeue); blocking operations are cancellable via
// context. Statistics are always collected; Prometheus metrics can be enabled
// via WithMetrics().
package buffer

import (
	"context"
	"fmt"
	"reflect"
	"time"
)

// Buffer represents a bounded FIFO buffer parameterized by item type T.
// All implementations are safe for concurrent use.
type Buffer[T any] interface {
	// TryEnqueue adds an item without blocking. It returns false when the
	// buffer is full and overwrite mode is off. In overwrite mode a full
	// buffer evicts its oldest item to make room and TryEnqueue returns true.
	// Nil-like items and closed buffers are rejected with an error.
	TryEnqueue(item T) (bool, error)

	// Enqueue adds an item, waiting for space when the buffer is full and
	// overwrite mode is off. The wait is aborted with ctx.Err() when the
	// context is cancelled; the buffer is left unchanged in that case.
	// In overwrite mode Enqueue never blocks.
	Enqueue(ctx context.Context, item T) error

	// EnqueueTimeout is Enqueue bounded by a deadline.
	EnqueueTimeout(item T, timeout time.Duration) error

	// TryDequeue removes and returns the oldest item without blocking.
	// It returns the zero value and false when the buffer is empty.
	TryDequeue() (T, bool)

	// Dequeue removes and returns the oldest item, waiting when the buffer
	// is empty. The wait is aborted with ctx.Err() when the context is
	// cancelled. A closed buffer still drains; once closed and empty,
	// Dequeue fails with a buffer-closed error.
	Dequeue(ctx context.Context) (T, error)

	// DequeueTimeout is Dequeue bounded by a deadline.
	DequeueTimeout(timeout time.Duration) (T, error)

	// DequeueBatch removes and returns up to max items without blocking.
	// The returned slice may be shorter than max, or nil when empty.
	DequeueBatch(max int) []T

	// Peek returns the oldest item without removing it.
	Peek() (T, bool)

	// Size returns the current number of items in the buffer.
	Size() int

	// Capacity returns the maximum number of items the buffer can hold.
	Capacity() int

	// IsFull returns true if the buffer is at maximum capacity.
	IsFull() bool

	// IsEmpty returns true if the buffer contains no items.
	IsEmpty() bool

	// Clear removes all items from the buffer.
	Clear()

	// Stats returns buffer statistics (always available for observability).
	Stats() *Statistics

	// Close shuts down the buffer. Blocked producers and consumers are
	// woken; remaining items can still be drained with TryDequeue,
	// Dequeue, or DequeueBatch.
	Close() error

	// String returns a human-readable debug representation of the buffer
	// contents and cursor positions. It is a convenience, not a contract.
	fmt.Stringer
}

// DropCallback is called with the item displaced by an overwrite-mode
// eviction. It runs outside the buffer lock.
type DropCallback[T any] func(item T)

// NewRingBuffer creates a new ring buffer with the specified capacity and options.
// Capacity must be at least 1; smaller values fail with an invalid-capacity error.
// Stats are always collected. Metrics are optional via WithMetrics().
func NewRingBuffer[T any](capacity int, options ...Option[T]) (Buffer[T], error) {
	opts := applyOptions(options...)
	return newRingBuffer(capacity, opts)
}

// isNilItem reports whether item is a nil pointer, map, slice, channel,
// function, or interface. Values of non-nilable kinds are never nil.
func isNilItem[T any](item T) bool {
	v := reflect.ValueOf(&item).Elem()
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}
