package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains all toolkit-level metrics (not instance-specific)
type Metrics struct {
	BuffersActive     *prometheus.GaugeVec
	ErrorsTotal       *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
}

// NewMetrics creates a new Metrics instance with all toolkit metrics
func NewMetrics() *Metrics {
	return &Metrics{
		BuffersActive: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "streamkit",
				Subsystem: "buffers",
				Name:      "active",
				Help:      "Number of open ring buffers",
			},
			[]string{"component"},
		),

		ErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "streamkit",
				Subsystem: "errors",
				Name:      "total",
				Help:      "Total number of errors by classification",
			},
			[]string{"component", "class"},
		),

		OperationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "streamkit",
				Subsystem: "operations",
				Name:      "duration_seconds",
				Help:      "Operation duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"component", "operation"},
		),
	}
}

// RecordBufferOpened increments the active buffer gauge for a component
func (c *Metrics) RecordBufferOpened(component string) {
	c.BuffersActive.WithLabelValues(component).Inc()
}

// RecordBufferClosed decrements the active buffer gauge for a component
func (c *Metrics) RecordBufferClosed(component string) {
	c.BuffersActive.WithLabelValues(component).Dec()
}

// RecordError increments the error counter for a component
func (c *Metrics) RecordError(component, class string) {
	c.ErrorsTotal.WithLabelValues(component, class).Inc()
}

// ObserveOperation records the duration of a component operation
func (c *Metrics) ObserveOperation(component, operation string, duration time.Duration) {
	c.OperationDuration.WithLabelValues(component, operation).Observe(duration.Seconds())
}
