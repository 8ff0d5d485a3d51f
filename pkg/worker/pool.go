// Package worker provides a generic worker pool that drains a ring buffer
package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/streamkit/metric"
	"github.com/c360/streamkit/pkg/buffer"
)

// Pool is a generic worker pool that processes work items of type T. Work is
// staged in a ring buffer: Submit stages without blocking, workers drain with
// blocking dequeues. The buffer's overwrite mode and drop callbacks apply to
// staged work unchanged.
type Pool[T any] struct {
	// Configuration
	workers   int
	buf       buffer.Buffer[T]
	processor func(context.Context, T) error

	// Runtime state
	metrics *Metrics
	wg      *sync.WaitGroup
	stopCh  chan struct{}

	// Lifecycle management
	lifecycleMu sync.Mutex
	started     bool
	stopped     bool

	// Statistics (atomic)
	submitted int64
	processed int64
	failed    int64
	dropped   int64

	// Metrics configuration
	metricsRegistry *metric.MetricsRegistry
	metricsPrefix   string
}

// Metrics holds Prometheus metrics for worker pool monitoring
type Metrics struct {
	queueDepth     prometheus.Gauge
	utilization    prometheus.Gauge
	submitted      prometheus.Counter
	processed      prometheus.Counter
	failed         prometheus.Counter
	dropped        prometheus.Counter
	processingTime *prometheus.HistogramVec
}

// Option represents a configuration option for the worker pool
type Option[T any] func(*Pool[T])

// WithMetricsRegistry configures the pool to register metrics with the toolkit's registry
func WithMetricsRegistry[T any](registry *metric.MetricsRegistry, prefix string) Option[T] {
	return func(p *Pool[T]) {
		p.metricsRegistry = registry
		p.metricsPrefix = prefix
	}
}

// NewPool creates a worker pool draining buf. The caller owns the buffer's
// configuration (capacity, overwrite mode, drop callbacks); the pool owns its
// lifecycle from Start onward and closes it on Stop.
func NewPool[T any](workers int, buf buffer.Buffer[T], processor func(context.Context, T) error, opts ...Option[T]) *Pool[T] {
	if workers <= 0 {
		workers = 10 // Default worker count
	}
	if buf == nil {
		panic(ErrNilBuffer)
	}
	if processor == nil {
		panic(ErrNilProcessor)
	}

	pool := &Pool[T]{
		workers:   workers,
		buf:       buf,
		processor: processor,
	}

	// Apply options
	for _, opt := range opts {
		opt(pool)
	}

	// Initialize metrics if registry provided
	if pool.metricsRegistry != nil && pool.metricsPrefix != "" {
		pool.initializeMetrics()
	}

	return pool
}

// initializeMetrics creates and registers metrics with the toolkit's registry
func (p *Pool[T]) initializeMetrics() {
	prefix := p.metricsPrefix

	queueDepth := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: prefix + "_queue_depth",
		Help: "Current number of staged work items",
	})
	utilization := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: prefix + "_utilization",
		Help: "Work buffer utilization (0-1)",
	})
	submitted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: prefix + "_submitted_total",
		Help: "Total work items submitted",
	})
	processed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: prefix + "_processed_total",
		Help: "Total work items processed",
	})
	failed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: prefix + "_failed_total",
		Help: "Total work items that failed processing",
	})
	dropped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: prefix + "_dropped_total",
		Help: "Total work items rejected by a full buffer",
	})
	processingTime := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prefix + "_processing_duration_seconds",
		Help:    "Time spent processing work items",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
	}, []string{"status"})

	serviceName := "worker_pool"
	p.metricsRegistry.RegisterGauge(serviceName, prefix+"_queue_depth", queueDepth)
	p.metricsRegistry.RegisterGauge(serviceName, prefix+"_utilization", utilization)
	p.metricsRegistry.RegisterCounter(serviceName, prefix+"_submitted_total", submitted)
	p.metricsRegistry.RegisterCounter(serviceName, prefix+"_processed_total", processed)
	p.metricsRegistry.RegisterCounter(serviceName, prefix+"_failed_total", failed)
	p.metricsRegistry.RegisterCounter(serviceName, prefix+"_dropped_total", dropped)
	p.metricsRegistry.RegisterHistogramVec(serviceName, prefix+"_processing_duration_seconds", processingTime)

	p.metrics = &Metrics{
		queueDepth:     queueDepth,
		utilization:    utilization,
		submitted:      submitted,
		processed:      processed,
		failed:         failed,
		dropped:        dropped,
		processingTime: processingTime,
	}
}

// Submit stages work without blocking. Returns ErrQueueFull when the buffer
// rejects the item. In overwrite mode staging always succeeds and the buffer
// evicts its oldest staged item instead.
func (p *Pool[T]) Submit(work T) error {
	p.lifecycleMu.Lock()
	defer p.lifecycleMu.Unlock()

	if !p.started {
		return ErrPoolNotStarted
	}
	if p.stopped {
		return ErrPoolStopped
	}

	ok, err := p.buf.TryEnqueue(work)
	if err != nil {
		return err
	}
	if !ok {
		atomic.AddInt64(&p.dropped, 1)
		if p.metrics != nil {
			p.metrics.dropped.Inc()
		}
		return ErrQueueFull
	}

	atomic.AddInt64(&p.submitted, 1)
	if p.metrics != nil {
		p.metrics.submitted.Inc()
		p.metrics.queueDepth.Set(float64(p.buf.Size()))
	}
	return nil
}

// Start starts the worker pool
func (p *Pool[T]) Start(ctx context.Context) error {
	p.lifecycleMu.Lock()
	defer p.lifecycleMu.Unlock()

	if p.started {
		return ErrPoolAlreadyStarted
	}

	p.wg = &sync.WaitGroup{}
	p.stopCh = make(chan struct{})

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}

	// Start metrics updater if metrics enabled
	if p.metrics != nil {
		p.wg.Add(1)
		go p.metricsUpdater(ctx)
	}

	p.started = true
	return nil
}

// Stop shuts the pool down. The work buffer is closed so workers drain what
// is already staged and then exit; Stop waits up to timeout for that.
func (p *Pool[T]) Stop(timeout time.Duration) error {
	p.lifecycleMu.Lock()
	defer p.lifecycleMu.Unlock()

	if !p.started || p.stopped {
		return nil
	}

	// Closing the buffer wakes blocked workers; staged items still drain
	if err := p.buf.Close(); err != nil {
		return err
	}
	close(p.stopCh)

	done := make(chan struct{})
	go func() {
		if p.wg != nil {
			p.wg.Wait()
		}
		close(done)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-done:
		p.stopped = true
		return nil
	case <-timer.C:
		// Timeout - workers may be stuck
		return ErrStopTimeout
	}
}

// Stats returns current pool statistics
func (p *Pool[T]) Stats() PoolStats {
	return PoolStats{
		Workers:    p.workers,
		QueueSize:  p.buf.Capacity(),
		QueueDepth: p.buf.Size(),
		Submitted:  atomic.LoadInt64(&p.submitted),
		Processed:  atomic.LoadInt64(&p.processed),
		Failed:     atomic.LoadInt64(&p.failed),
		Dropped:    atomic.LoadInt64(&p.dropped),
	}
}

// PoolStats represents worker pool statistics
type PoolStats struct {
	Workers    int   `json:"workers"`
	QueueSize  int   `json:"queue_size"`
	QueueDepth int   `json:"queue_depth"`
	Submitted  int64 `json:"submitted"`
	Processed  int64 `json:"processed"`
	Failed     int64 `json:"failed"`
	Dropped    int64 `json:"dropped"`
}

// worker drains the buffer until it is closed and empty or ctx is cancelled
func (p *Pool[T]) worker(ctx context.Context) {
	defer p.wg.Done()

	for {
		work, err := p.buf.Dequeue(ctx)
		if err != nil {
			// Cancelled, or closed with nothing left to drain
			return
		}

		start := time.Now()
		err = p.processor(ctx, work)
		duration := time.Since(start)

		atomic.AddInt64(&p.processed, 1)
		if err != nil {
			atomic.AddInt64(&p.failed, 1)
		}

		if p.metrics != nil {
			p.metrics.processed.Inc()
			status := "success"
			if err != nil {
				p.metrics.failed.Inc()
				status = "error"
			}
			p.metrics.processingTime.WithLabelValues(status).Observe(duration.Seconds())
		}
	}
}

// metricsUpdater periodically updates utilization and queue depth metrics
func (p *Pool[T]) metricsUpdater(ctx context.Context) {
	defer p.wg.Done()

	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stopCh:
			return
		case <-ticker.C:
			depth := float64(p.buf.Size())
			p.metrics.queueDepth.Set(depth)
			p.metrics.utilization.Set(depth / float64(p.buf.Capacity()))
		}
	}
}
