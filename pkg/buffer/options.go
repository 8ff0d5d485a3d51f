package buffer

import (
	"github.com/c360/streamkit/metric"
)

// Option configures buffer behavior using the functional options pattern.
type Option[T any] func(*bufferOptions[T])

// bufferOptions holds internal configuration for buffer instances.
// Stats are ALWAYS collected - they are not optional.
// Metrics are optional and exposed via WithMetrics().
type bufferOptions[T any] struct {
	overwrite    bool
	dropCallback DropCallback[T]

	// metricsReg is optional - if provided, buffer stats are also exposed as Prometheus metrics
	metricsReg *metric.MetricsRegistry

	// metricsPrefix is used as the component label for Prometheus metrics
	metricsPrefix string
}

// WithOverwrite makes a full buffer evict its oldest unread item on enqueue
// instead of rejecting (non-blocking form) or waiting (blocking form).
// Defaults to off.
func WithOverwrite[T any]() Option[T] {
	return func(opts *bufferOptions[T]) {
		opts.overwrite = true
	}
}

// WithMetrics enables Prometheus metrics export for buffer statistics.
// If registry is nil or prefix is empty, this option is ignored.
func WithMetrics[T any](registry *metric.MetricsRegistry, prefix string) Option[T] {
	return func(opts *bufferOptions[T]) {
		if registry != nil && prefix != "" {
			opts.metricsReg = registry
			opts.metricsPrefix = prefix
		}
	}
}

// WithDropCallback sets a callback function that is called when items are
// evicted by overwrite mode or discarded by Clear.
func WithDropCallback[T any](callback DropCallback[T]) Option[T] {
	return func(opts *bufferOptions[T]) {
		opts.dropCallback = callback
	}
}

// applyOptions applies functional options to create final buffer configuration.
func applyOptions[T any](options ...Option[T]) *bufferOptions[T] {
	opts := &bufferOptions[T]{}

	for _, opt := range options {
		if opt != nil {
			opt(opts)
		}
	}

	return opts
}
