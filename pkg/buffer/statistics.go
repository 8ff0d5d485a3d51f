package buffer

import (
	"sync"
	"sync/atomic"
	"time"
)

// Statistics tracks buffer performance metrics.
type Statistics struct {
	// Atomic counters for thread-safe updates
	enqueues   int64
	dequeues   int64
	peeks      int64
	evictions  int64
	rejections int64

	// Protected by mutex
	mu          sync.RWMutex
	startTime   time.Time
	currentSize int64
	maxSize     int64
}

// NewStatistics creates a new statistics tracker.
func NewStatistics() *Statistics {
	return &Statistics{
		startTime: time.Now(),
	}
}

// Enqueue records a successful enqueue operation.
func (s *Statistics) Enqueue() {
	atomic.AddInt64(&s.enqueues, 1)
}

// Dequeue records a successful dequeue operation.
func (s *Statistics) Dequeue() {
	atomic.AddInt64(&s.dequeues, 1)
}

// Peek records a peek operation.
func (s *Statistics) Peek() {
	atomic.AddInt64(&s.peeks, 1)
}

// Eviction records an overwrite-mode eviction of the oldest item.
func (s *Statistics) Eviction() {
	atomic.AddInt64(&s.evictions, 1)
}

// Rejection records a non-blocking enqueue rejected by a full buffer.
func (s *Statistics) Rejection() {
	atomic.AddInt64(&s.rejections, 1)
}

// UpdateSize updates the current buffer size.
func (s *Statistics) UpdateSize(size int64) {
	s.mu.Lock()
	s.currentSize = size
	if size > s.maxSize {
		s.maxSize = size
	}
	s.mu.Unlock()
}

// Enqueues returns the total number of successful enqueue operations.
func (s *Statistics) Enqueues() int64 {
	return atomic.LoadInt64(&s.enqueues)
}

// Dequeues returns the total number of successful dequeue operations.
func (s *Statistics) Dequeues() int64 {
	return atomic.LoadInt64(&s.dequeues)
}

// Peeks returns the total number of peek operations.
func (s *Statistics) Peeks() int64 {
	return atomic.LoadInt64(&s.peeks)
}

// Evictions returns the total number of overwrite-mode evictions.
func (s *Statistics) Evictions() int64 {
	return atomic.LoadInt64(&s.evictions)
}

// Rejections returns the total number of rejected non-blocking enqueues.
func (s *Statistics) Rejections() int64 {
	return atomic.LoadInt64(&s.rejections)
}

// CurrentSize returns the current number of items in the buffer.
func (s *Statistics) CurrentSize() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentSize
}

// MaxSize returns the maximum number of items the buffer has held.
func (s *Statistics) MaxSize() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.maxSize
}

// Throughput returns the average number of enqueues per second.
func (s *Statistics) Throughput() float64 {
	s.mu.RLock()
	elapsed := time.Since(s.startTime)
	s.mu.RUnlock()

	if elapsed == 0 {
		return 0.0
	}

	return float64(s.Enqueues()) / elapsed.Seconds()
}

// DequeueThroughput returns the average number of dequeues per second.
func (s *Statistics) DequeueThroughput() float64 {
	s.mu.RLock()
	elapsed := time.Since(s.startTime)
	s.mu.RUnlock()

	if elapsed == 0 {
		return 0.0
	}

	return float64(s.Dequeues()) / elapsed.Seconds()
}

// EvictionRate returns the fraction of enqueues that displaced an unread
// item (0.0 to 1.0).
func (s *Statistics) EvictionRate() float64 {
	enqueues := s.Enqueues()
	evictions := s.Evictions()

	if enqueues == 0 {
		return 0.0
	}

	return float64(evictions) / float64(enqueues)
}

// Utilization returns the current buffer utilization as a fraction (0.0 to 1.0).
func (s *Statistics) Utilization(capacity int64) float64 {
	if capacity == 0 {
		return 0.0
	}

	return float64(s.CurrentSize()) / float64(capacity)
}

// Uptime returns how long the buffer has been running.
func (s *Statistics) Uptime() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return time.Since(s.startTime)
}

// Reset resets all statistics to zero.
func (s *Statistics) Reset() {
	atomic.StoreInt64(&s.enqueues, 0)
	atomic.StoreInt64(&s.dequeues, 0)
	atomic.StoreInt64(&s.peeks, 0)
	atomic.StoreInt64(&s.evictions, 0)
	atomic.StoreInt64(&s.rejections, 0)

	s.mu.Lock()
	s.startTime = time.Now()
	s.currentSize = 0
	s.maxSize = 0
	s.mu.Unlock()
}

// StatsSummary is a snapshot of all statistics.
type StatsSummary struct {
	Enqueues          int64         `json:"enqueues"`
	Dequeues          int64         `json:"dequeues"`
	Peeks             int64         `json:"peeks"`
	Evictions         int64         `json:"evictions"`
	Rejections        int64         `json:"rejections"`
	CurrentSize       int64         `json:"current_size"`
	MaxSize           int64         `json:"max_size"`
	Throughput        float64       `json:"throughput"`
	DequeueThroughput float64       `json:"dequeue_throughput"`
	EvictionRate      float64       `json:"eviction_rate"`
	Uptime            time.Duration `json:"uptime"`
}

// Summary returns a snapshot of all statistics.
func (s *Statistics) Summary() StatsSummary {
	return StatsSummary{
		Enqueues:          s.Enqueues(),
		Dequeues:          s.Dequeues(),
		Peeks:             s.Peeks(),
		Evictions:         s.Evictions(),
		Rejections:        s.Rejections(),
		CurrentSize:       s.CurrentSize(),
		MaxSize:           s.MaxSize(),
		Throughput:        s.Throughput(),
		DequeueThroughput: s.DequeueThroughput(),
		EvictionRate:      s.EvictionRate(),
		Uptime:            s.Uptime(),
	}
}
