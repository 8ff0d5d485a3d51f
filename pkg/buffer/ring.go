package buffer

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/c360/streamkit/errors"
)

// ringBuffer is a thread-safe fixed-capacity FIFO buffer with optional
// overwrite mode. All cursor and slot state is guarded by a single mutex;
// blocking operations wait on the notEmpty/notFull condition variables and
// re-check their predicate in a loop after every wake.
type ringBuffer[T any] struct {
	mu       sync.Mutex
	items    []T
	capacity int
	size     int
	head     int // next write position
	tail     int // next read position
	stats    *Statistics
	metrics  *bufferMetrics
	opts     *bufferOptions[T]

	notEmpty *sync.Cond
	notFull  *sync.Cond
	closed   bool
}

// newRingBuffer creates a new ring buffer instance.
// Returns an error for capacities below 1 or if metrics registration fails.
func newRingBuffer[T any](capacity int, opts *bufferOptions[T]) (*ringBuffer[T], error) {
	if capacity < 1 {
		return nil, errors.WrapInvalid(errors.ErrInvalidCapacity, "Buffer", "NewRingBuffer",
			fmt.Sprintf("capacity %d", capacity))
	}

	// Stats are always initialized - observability is not optional
	stats := NewStatistics()

	var metrics *bufferMetrics
	if opts.metricsReg != nil && opts.metricsPrefix != "" {
		var err error
		metrics, err = newBufferMetrics(opts.metricsReg, opts.metricsPrefix)
		if err != nil {
			return nil, errors.WrapTransient(err, "Buffer", "NewRingBuffer", "metrics registration")
		}
		metrics.recordOpened()
	}

	rb := &ringBuffer[T]{
		items:    make([]T, capacity),
		capacity: capacity,
		stats:    stats,
		metrics:  metrics,
		opts:     opts,
	}

	rb.notEmpty = sync.NewCond(&rb.mu)
	rb.notFull = sync.NewCond(&rb.mu)

	return rb, nil
}

// TryEnqueue adds an item without blocking.
func (rb *ringBuffer[T]) TryEnqueue(item T) (bool, error) {
	if isNilItem(item) {
		return false, errors.WrapInvalid(errors.ErrNilElement, "Buffer", "TryEnqueue", "element validation")
	}

	rb.mu.Lock()

	if rb.closed {
		rb.mu.Unlock()
		return false, errors.WrapInvalid(errors.ErrBufferClosed, "Buffer", "TryEnqueue", "buffer closed")
	}

	var evicted T
	didEvict := false
	if rb.size == rb.capacity {
		if !rb.opts.overwrite {
			rb.stats.Rejection()
			if rb.metrics != nil {
				rb.metrics.recordRejection()
			}
			rb.mu.Unlock()
			return false, nil
		}
		evicted = rb.evictLocked()
		didEvict = true
	}

	rb.writeLocked(item)
	callback := rb.opts.dropCallback
	rb.mu.Unlock()

	if didEvict && callback != nil {
		callback(evicted)
	}
	return true, nil
}

// Enqueue adds an item, waiting for space when the buffer is full and
// overwrite mode is off. Cancelling ctx aborts the wait with ctx.Err() and
// leaves the buffer unchanged. In overwrite mode Enqueue never blocks.
func (rb *ringBuffer[T]) Enqueue(ctx context.Context, item T) error {
	if isNilItem(item) {
		return errors.WrapInvalid(errors.ErrNilElement, "Buffer", "Enqueue", "element validation")
	}

	rb.mu.Lock()

	if rb.closed {
		rb.mu.Unlock()
		return errors.WrapInvalid(errors.ErrBufferClosed, "Buffer", "Enqueue", "buffer closed")
	}

	select {
	case <-ctx.Done():
		rb.mu.Unlock()
		return ctx.Err()
	default:
	}

	if rb.size == rb.capacity && !rb.opts.overwrite {
		if err := rb.waitLocked(ctx, rb.notFull, func() bool {
			return rb.size == rb.capacity
		}); err != nil {
			rb.mu.Unlock()
			return err
		}
		if rb.closed {
			rb.mu.Unlock()
			return errors.WrapInvalid(errors.ErrBufferClosed, "Buffer", "Enqueue", "buffer closed during wait")
		}
	}

	var evicted T
	didEvict := false
	if rb.size == rb.capacity {
		// overwrite mode: displace the oldest unread item
		evicted = rb.evictLocked()
		didEvict = true
	}

	rb.writeLocked(item)
	callback := rb.opts.dropCallback
	rb.mu.Unlock()

	if didEvict && callback != nil {
		callback(evicted)
	}
	return nil
}

// EnqueueTimeout is Enqueue bounded by a deadline.
func (rb *ringBuffer[T]) EnqueueTimeout(item T, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	return rb.Enqueue(ctx, item)
}

// TryDequeue removes and returns the oldest item without blocking.
func (rb *ringBuffer[T]) TryDequeue() (T, bool) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	var zero T
	if rb.size == 0 {
		return zero, false
	}

	return rb.readLocked(), true
}

// Dequeue removes and returns the oldest item, waiting when the buffer is
// empty. Cancelling ctx aborts the wait with ctx.Err(). A closed buffer
// still drains; once closed and empty, Dequeue fails.
func (rb *ringBuffer[T]) Dequeue(ctx context.Context) (T, error) {
	rb.mu.Lock()

	var zero T

	select {
	case <-ctx.Done():
		rb.mu.Unlock()
		return zero, ctx.Err()
	default:
	}

	if rb.size == 0 {
		if rb.closed {
			rb.mu.Unlock()
			return zero, errors.WrapInvalid(errors.ErrBufferClosed, "Buffer", "Dequeue", "buffer closed")
		}
		if err := rb.waitLocked(ctx, rb.notEmpty, func() bool {
			return rb.size == 0
		}); err != nil {
			rb.mu.Unlock()
			return zero, err
		}
		if rb.size == 0 {
			// woken by Close with nothing left to drain
			rb.mu.Unlock()
			return zero, errors.WrapInvalid(errors.ErrBufferClosed, "Buffer", "Dequeue", "buffer closed during wait")
		}
	}

	item := rb.readLocked()
	rb.mu.Unlock()
	return item, nil
}

// DequeueTimeout is Dequeue bounded by a deadline.
func (rb *ringBuffer[T]) DequeueTimeout(timeout time.Duration) (T, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	return rb.Dequeue(ctx)
}

// DequeueBatch removes and returns up to max items without blocking.
func (rb *ringBuffer[T]) DequeueBatch(max int) []T {
	if max <= 0 {
		return nil
	}

	rb.mu.Lock()
	defer rb.mu.Unlock()

	if rb.size == 0 {
		return nil
	}

	readCount := max
	if readCount > rb.size {
		readCount = rb.size
	}

	result := make([]T, readCount)
	for i := 0; i < readCount; i++ {
		result[i] = rb.readLocked()
	}

	return result
}

// Peek returns the oldest item without removing it.
func (rb *ringBuffer[T]) Peek() (T, bool) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	var zero T
	if rb.size == 0 {
		return zero, false
	}

	item := rb.items[rb.tail]

	rb.stats.Peek()
	if rb.metrics != nil {
		rb.metrics.recordPeek()
	}

	return item, true
}

// Size returns the current number of items in the buffer.
func (rb *ringBuffer[T]) Size() int {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	return rb.size
}

// Capacity returns the maximum number of items the buffer can hold.
func (rb *ringBuffer[T]) Capacity() int {
	return rb.capacity // immutable, so no lock needed
}

// IsFull returns true if the buffer is at maximum capacity.
func (rb *ringBuffer[T]) IsFull() bool {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	return rb.size == rb.capacity
}

// IsEmpty returns true if the buffer contains no items.
func (rb *ringBuffer[T]) IsEmpty() bool {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	return rb.size == 0
}

// Clear removes all items from the buffer.
func (rb *ringBuffer[T]) Clear() {
	rb.mu.Lock()

	var dropped []T
	if rb.opts.dropCallback != nil && rb.size > 0 {
		dropped = make([]T, rb.size)
		for i := 0; i < rb.size; i++ {
			dropped[i] = rb.items[(rb.tail+i)%rb.capacity]
		}
	}

	var zero T
	for i := 0; i < rb.capacity; i++ {
		rb.items[i] = zero
	}

	rb.head = 0
	rb.tail = 0
	rb.size = 0

	rb.stats.UpdateSize(0)
	if rb.metrics != nil {
		rb.metrics.updateSize(0, rb.capacity)
	}

	// Wake all waiting producers
	rb.notFull.Broadcast()

	callback := rb.opts.dropCallback
	rb.mu.Unlock()

	if callback != nil {
		for _, item := range dropped {
			callback(item)
		}
	}
}

// Stats returns buffer statistics (always available for observability).
func (rb *ringBuffer[T]) Stats() *Statistics {
	return rb.stats
}

// Close shuts down the buffer. Waiting producers and consumers are woken;
// remaining items can still be drained.
func (rb *ringBuffer[T]) Close() error {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	if rb.closed {
		return nil
	}

	rb.closed = true

	if rb.metrics != nil {
		rb.metrics.recordClosed()
	}

	// Wake up all waiting goroutines
	rb.notEmpty.Broadcast()
	rb.notFull.Broadcast()

	return nil
}

// String returns a debug representation of the buffer state.
func (rb *ringBuffer[T]) String() string {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	var sb strings.Builder
	fmt.Fprintf(&sb, "RingBuffer{capacity=%d, size=%d, tail=%d, head=%d, items=[", rb.capacity, rb.size, rb.tail, rb.head)
	for i := 0; i < rb.capacity; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		if rb.slotOccupiedLocked(i) {
			fmt.Fprintf(&sb, "%v", rb.items[i])
		} else {
			sb.WriteString("_")
		}
	}
	sb.WriteString("]}")
	return sb.String()
}

// slotOccupiedLocked reports whether slot i holds a live item. Occupied slots
// are exactly those reachable from tail advancing size steps mod capacity.
func (rb *ringBuffer[T]) slotOccupiedLocked(i int) bool {
	offset := (i - rb.tail + rb.capacity) % rb.capacity
	return offset < rb.size
}

// waitLocked blocks on cond while predicate holds and the buffer is open,
// releasing the mutex during the wait. It returns ctx.Err() if the context is
// cancelled, with the mutex still held either way. A helper goroutine wakes
// the waiters on cancellation; it takes the mutex before broadcasting so a
// cancellation arriving between the predicate check and the wait cannot be
// lost.
func (rb *ringBuffer[T]) waitLocked(ctx context.Context, cond *sync.Cond, predicate func() bool) error {
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			rb.mu.Lock()
			cond.Broadcast()
			rb.mu.Unlock()
		case <-done:
		}
	}()

	for predicate() && !rb.closed {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		cond.Wait()

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	return nil
}

// writeLocked stores item at the head cursor and advances it. Callers hold
// the mutex and have already ensured a free slot.
func (rb *ringBuffer[T]) writeLocked(item T) {
	rb.items[rb.head] = item
	rb.head = (rb.head + 1) % rb.capacity
	rb.size++

	rb.stats.Enqueue()
	rb.stats.UpdateSize(int64(rb.size))
	if rb.metrics != nil {
		rb.metrics.recordEnqueue(rb.size, rb.capacity)
	}

	rb.notEmpty.Signal()
}

// readLocked removes and returns the item at the tail cursor. Callers hold
// the mutex and have already ensured the buffer is non-empty.
func (rb *ringBuffer[T]) readLocked() T {
	var zero T

	item := rb.items[rb.tail]
	rb.items[rb.tail] = zero // clear for GC
	rb.tail = (rb.tail + 1) % rb.capacity
	rb.size--

	rb.stats.Dequeue()
	rb.stats.UpdateSize(int64(rb.size))
	if rb.metrics != nil {
		rb.metrics.recordDequeue(rb.size, rb.capacity)
	}

	rb.notFull.Signal()

	return item
}

// evictLocked removes and returns the oldest item to make room for an
// overwrite. After the subsequent write the tail coincides with the
// post-increment head, so the next read returns the new oldest element.
func (rb *ringBuffer[T]) evictLocked() T {
	var zero T

	item := rb.items[rb.tail]
	rb.items[rb.tail] = zero
	rb.tail = (rb.tail + 1) % rb.capacity
	rb.size--

	rb.stats.Eviction()
	if rb.metrics != nil {
		rb.metrics.recordEviction()
	}

	return item
}
