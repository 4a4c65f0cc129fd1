package gbsdata

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    loadCounter   prometheus.Counter
//	    loadHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordLoad(dataset string, duration time.Duration, err error) {
//	    p.loadCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordLoad is called after each dataset load attempt, successful or
	// not. duration is the total time taken including validation, err is
	// nil on success.
	RecordLoad(dataset string, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordLoad(string, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	LoadCount      atomic.Int64
	LoadErrors     atomic.Int64
	LoadTotalNanos atomic.Int64
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(dataset string, duration time.Duration, err error) {
	b.LoadCount.Add(1)
	b.LoadTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.LoadErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		LoadCount:    b.LoadCount.Load(),
		LoadErrors:   b.LoadErrors.Load(),
		LoadAvgNanos: b.getAvgLoadNanos(),
	}
}

func (b *BasicMetricsCollector) getAvgLoadNanos() int64 {
	count := b.LoadCount.Load()
	if count == 0 {
		return 0
	}
	return b.LoadTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	LoadCount    int64
	LoadErrors   int64
	LoadAvgNanos int64
}
