package index

import "time"

// MetricsCollector receives operational metrics from the hosts.
// Any type with this method set works, including geo3d collectors.
type MetricsCollector interface {
	// RecordInsert is called after each insert.
	RecordInsert(duration time.Duration, err error)

	// RecordSearch is called after each search with the number of ids
	// returned (matches plus recheck candidates).
	RecordSearch(hits int, duration time.Duration, err error)

	// RecordNearest is called after each nearest-neighbor scan.
	RecordNearest(k int, duration time.Duration, err error)

	// RecordSplit is called after a node or leaf page split. fallback is
	// set when the entries could not be separated by geometry: an R-tree
	// bisection split, or an octree all-the-same spread of equal points.
	RecordSplit(entries int, fallback bool)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordInsert(time.Duration, error)       {}
func (NoopMetricsCollector) RecordSearch(int, time.Duration, error)  {}
func (NoopMetricsCollector) RecordNearest(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordSplit(int, bool)                   {}

