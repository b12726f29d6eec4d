// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Run metrics: named counters plus arbitrary values, thread-safe.

package control

import (
	"sync"
	"time"
)

// Metric keys recorded by the harness.
const (
	MetricRuns          = "run.count"
	MetricRecords       = "run.records"
	MetricSendBusy      = "send.busy"
	MetricRingRetry     = "ring.alloc_retry"
	MetricHandshakes    = "handshake.count"
	MetricBindFailures  = "bind.failures"
	MetricZeroSamples   = "report.zero_samples"
	MetricPairsMeasured = "sweep.pairs"
	MetricLastMedian    = "run.last_median_ns"
)

// MetricsRegistry holds counters and last-value metrics.
type MetricsRegistry struct {
	mu       sync.RWMutex
	counters map[string]uint64
	values   map[string]any
	updated  time.Time
}

// NewMetricsRegistry creates an empty registry.
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		counters: make(map[string]uint64),
		values:   make(map[string]any),
	}
}

// Set sets or updates a value metric.
func (mr *MetricsRegistry) Set(key string, value any) {
	if mr == nil {
		return
	}
	mr.mu.Lock()
	mr.values[key] = value
	mr.updated = time.Now()
	mr.mu.Unlock()
}

// Add increments a counter by delta.
func (mr *MetricsRegistry) Add(key string, delta uint64) {
	if mr == nil {
		return
	}
	mr.mu.Lock()
	mr.counters[key] += delta
	mr.updated = time.Now()
	mr.mu.Unlock()
}

// Counter returns a counter's value.
func (mr *MetricsRegistry) Counter(key string) uint64 {
	if mr == nil {
		return 0
	}
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	return mr.counters[key]
}

// Updated returns the time of the last write.
func (mr *MetricsRegistry) Updated() time.Time {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	return mr.updated
}

// GetSnapshot returns counters and values merged into one map.
func (mr *MetricsRegistry) GetSnapshot() map[string]any {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	out := make(map[string]any, len(mr.counters)+len(mr.values))
	for k, v := range mr.values {
		out[k] = v
	}
	for k, v := range mr.counters {
		out[k] = v
	}
	return out
}
