// Package metric provides Prometheus-based metrics collection and an HTTP
// server for StreamKit monitoring and observability.
//
// The package offers a centralized metrics registry managing both core toolkit
// metrics (active buffers, errors, operation durations) and custom
// component-specific metrics. It includes an HTTP server exposing metrics in
// Prometheus format for monitoring system integration.
//
// # Architecture
//
// The package follows a three-layer design:
//
//  1. Core Metrics: Toolkit-level metrics automatically registered (Metrics type)
//  2. Component Registry: Extensible registration for component-specific metrics (MetricsRegistrar interface)
//  3. HTTP Server: Metrics endpoint with health checks (Server type)
//
// This architecture separates infrastructure concerns (core metrics) from
// application concerns (component-specific metrics) while providing a unified
// metrics endpoint for monitoring systems.
//
// # Basic Usage
//
// Setting up metrics collection and HTTP server:
//
//	registry := metric.NewMetricsRegistry()
//	server := metric.NewServer(9090, "/metrics", registry)
//
//	go func() {
//	    if err := server.Start(); err != nil {
//	        log.Printf("Metrics server error: %v", err)
//	    }
//	}()
//
// Buffer and worker pool instances register their own metrics through the
// registry when constructed with their metrics options:
//
//	buf, err := buffer.NewRingBuffer[int](1024,
//	    buffer.WithMetrics[int](registry, "ingest"),
//	)
//
// # Duplicate Registration
//
// The registry tracks registrations per component/metric pair and rejects
// duplicates with a classified Invalid error, so a misconfigured component
// fails fast instead of silently overwriting another component's series.
package metric
