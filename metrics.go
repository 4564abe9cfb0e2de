package geo3d

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    insertCounter   prometheus.Counter
//	    searchHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordInsert(duration time.Duration, err error) {
//	    p.insertCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordInsert is called after each insert or bulk load.
	// duration is the total time taken, err is nil if successful.
	RecordInsert(duration time.Duration, err error)

	// RecordSearch is called after each search operation.
	// hits is the number of ids returned, duration is the time taken,
	// err is nil if successful.
	RecordSearch(hits int, duration time.Duration, err error)

	// RecordBatchSearch is called after each batch search.
	// count is the number of query sets in the batch.
	RecordBatchSearch(count int, duration time.Duration, err error)

	// RecordNearest is called after each nearest-neighbor scan.
	RecordNearest(k int, duration time.Duration, err error)

	// RecordSplit is called after each node split. fallback is set when the
	// split could not separate the entries by geometry: an R-tree bisection
	// split or an octree all-the-same spread.
	RecordSplit(entries int, fallback bool)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordInsert(time.Duration, error)           {}
func (NoopMetricsCollector) RecordSearch(int, time.Duration, error)      {}
func (NoopMetricsCollector) RecordBatchSearch(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordNearest(int, time.Duration, error)     {}
func (NoopMetricsCollector) RecordSplit(int, bool)                       {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	InsertCount        atomic.Int64
	InsertErrors       atomic.Int64
	InsertTotalNanos   atomic.Int64
	SearchCount        atomic.Int64
	SearchErrors       atomic.Int64
	SearchHits         atomic.Int64
	SearchTotalNanos   atomic.Int64
	BatchSearchCount   atomic.Int64
	BatchSearchQueries atomic.Int64
	BatchSearchErrors  atomic.Int64
	NearestCount       atomic.Int64
	NearestErrors      atomic.Int64
	NearestTotalNanos  atomic.Int64
	SplitCount         atomic.Int64
	SplitFallbacks     atomic.Int64
}

// RecordInsert implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInsert(duration time.Duration, err error) {
	b.InsertCount.Add(1)
	b.InsertTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.InsertErrors.Add(1)
	}
}

// RecordSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSearch(hits int, duration time.Duration, err error) {
	b.SearchCount.Add(1)
	b.SearchTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SearchErrors.Add(1)
		return
	}
	b.SearchHits.Add(int64(hits))
}

// RecordBatchSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBatchSearch(count int, duration time.Duration, err error) {
	b.BatchSearchCount.Add(1)
	b.BatchSearchQueries.Add(int64(count))
	if err != nil {
		b.BatchSearchErrors.Add(1)
	}
}

// RecordNearest implements MetricsCollector.
func (b *BasicMetricsCollector) RecordNearest(k int, duration time.Duration, err error) {
	b.NearestCount.Add(1)
	b.NearestTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.NearestErrors.Add(1)
	}
}

// RecordSplit implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSplit(entries int, fallback bool) {
	b.SplitCount.Add(1)
	if fallback {
		b.SplitFallbacks.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		InsertCount:        b.InsertCount.Load(),
		InsertErrors:       b.InsertErrors.Load(),
		InsertAvgNanos:     avg(b.InsertTotalNanos.Load(), b.InsertCount.Load()),
		SearchCount:        b.SearchCount.Load(),
		SearchErrors:       b.SearchErrors.Load(),
		SearchHits:         b.SearchHits.Load(),
		SearchAvgNanos:     avg(b.SearchTotalNanos.Load(), b.SearchCount.Load()),
		BatchSearchCount:   b.BatchSearchCount.Load(),
		BatchSearchQueries: b.BatchSearchQueries.Load(),
		BatchSearchErrors:  b.BatchSearchErrors.Load(),
		NearestCount:       b.NearestCount.Load(),
		NearestErrors:      b.NearestErrors.Load(),
		NearestAvgNanos:    avg(b.NearestTotalNanos.Load(), b.NearestCount.Load()),
		SplitCount:         b.SplitCount.Load(),
		SplitFallbacks:     b.SplitFallbacks.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	InsertCount        int64
	InsertErrors       int64
	InsertAvgNanos     int64
	SearchCount        int64
	SearchErrors       int64
	SearchHits         int64
	SearchAvgNanos     int64
	BatchSearchCount   int64
	BatchSearchQueries int64
	BatchSearchErrors  int64
	NearestCount       int64
	NearestErrors      int64
	NearestAvgNanos    int64
	SplitCount         int64
	SplitFallbacks     int64
}
