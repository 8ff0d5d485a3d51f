package buffer

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/streamkit/metric"
)

// bufferMetrics holds Prometheus metrics for buffer operations.
type bufferMetrics struct {
	// Counter metrics - directly incremented without stats duplication
	enqueues   prometheus.Counter
	dequeues   prometheus.Counter
	peeks      prometheus.Counter
	evictions  prometheus.Counter
	rejections prometheus.Counter

	// Gauge metrics - updated on operations
	size        prometheus.Gauge
	utilization prometheus.Gauge

	// Core toolkit metrics track buffer lifecycle per component
	core   *metric.Metrics
	prefix string
}

// newBufferMetrics creates and registers buffer metrics with the provided registry.
func newBufferMetrics(registry *metric.MetricsRegistry, prefix string) (*bufferMetrics, error) {
	m := &bufferMetrics{
		enqueues: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "streamkit",
			Subsystem:   "ringbuffer",
			Name:        "enqueues_total",
			ConstLabels: prometheus.Labels{"component": prefix},
			Help:        "Total number of successful enqueue operations",
		}),
		dequeues: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "streamkit",
			Subsystem:   "ringbuffer",
			Name:        "dequeues_total",
			ConstLabels: prometheus.Labels{"component": prefix},
			Help:        "Total number of successful dequeue operations",
		}),
		peeks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "streamkit",
			Subsystem:   "ringbuffer",
			Name:        "peeks_total",
			ConstLabels: prometheus.Labels{"component": prefix},
			Help:        "Total number of peek operations",
		}),
		evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "streamkit",
			Subsystem:   "ringbuffer",
			Name:        "evictions_total",
			ConstLabels: prometheus.Labels{"component": prefix},
			Help:        "Total number of overwrite-mode evictions",
		}),
		rejections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "streamkit",
			Subsystem:   "ringbuffer",
			Name:        "rejections_total",
			ConstLabels: prometheus.Labels{"component": prefix},
			Help:        "Total number of non-blocking enqueues rejected by a full buffer",
		}),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "streamkit",
			Subsystem:   "ringbuffer",
			Name:        "size",
			ConstLabels: prometheus.Labels{"component": prefix},
			Help:        "Current number of items in buffer",
		}),
		utilization: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "streamkit",
			Subsystem:   "ringbuffer",
			Name:        "utilization",
			ConstLabels: prometheus.Labels{"component": prefix},
			Help:        "Buffer utilization as a fraction (0.0 to 1.0)",
		}),
		core:   registry.CoreMetrics(),
		prefix: prefix,
	}

	// Register all metrics with the registry
	if err := registry.RegisterCounter(prefix, "ringbuffer_enqueues", m.enqueues); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter(prefix, "ringbuffer_dequeues", m.dequeues); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter(prefix, "ringbuffer_peeks", m.peeks); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter(prefix, "ringbuffer_evictions", m.evictions); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter(prefix, "ringbuffer_rejections", m.rejections); err != nil {
		return nil, err
	}
	if err := registry.RegisterGauge(prefix, "ringbuffer_size", m.size); err != nil {
		return nil, err
	}
	if err := registry.RegisterGauge(prefix, "ringbuffer_utilization", m.utilization); err != nil {
		return nil, err
	}

	return m, nil
}

// recordEnqueue increments the enqueue counter and updates size/utilization.
func (m *bufferMetrics) recordEnqueue(size, capacity int) {
	m.enqueues.Inc()
	m.size.Set(float64(size))
	m.utilization.Set(float64(size) / float64(capacity))
}

// recordDequeue increments the dequeue counter and updates size/utilization.
func (m *bufferMetrics) recordDequeue(size, capacity int) {
	m.dequeues.Inc()
	m.size.Set(float64(size))
	m.utilization.Set(float64(size) / float64(capacity))
}

// recordPeek increments the peek counter.
func (m *bufferMetrics) recordPeek() {
	m.peeks.Inc()
}

// recordEviction increments the eviction counter.
func (m *bufferMetrics) recordEviction() {
	m.evictions.Inc()
}

// recordRejection increments the rejection counter.
func (m *bufferMetrics) recordRejection() {
	m.rejections.Inc()
}

// updateSize sets the current buffer size and utilization.
func (m *bufferMetrics) updateSize(size, capacity int) {
	m.size.Set(float64(size))
	m.utilization.Set(float64(size) / float64(capacity))
}

// recordOpened increments the toolkit-level active buffer gauge.
func (m *bufferMetrics) recordOpened() {
	m.core.RecordBufferOpened(m.prefix)
}

// recordClosed decrements the toolkit-level active buffer gauge.
func (m *bufferMetrics) recordClosed() {
	m.core.RecordBufferClosed(m.prefix)
}
