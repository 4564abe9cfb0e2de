package geo3d

import (
	"log/slog"
	"runtime"

	"github.com/hupe1980/geo3d/index/octree"
	"github.com/hupe1980/geo3d/index/rtree"
	"github.com/hupe1980/geo3d/spgist"
)

type options struct {
	metricsCollector  MetricsCollector
	logger            *Logger
	maxEntries        int
	leafCapacity      int
	maxDepth          int
	centroid          spgist.Centroid
	searchConcurrency int
}

// Option configures NewRTree and NewOctree.
//
// Options that do not apply to an index kind are ignored: MaxEntries only
// affects R-trees, LeafCapacity, MaxDepth and Centroid only affect octrees.
type Option func(*options)

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &geo3d.BasicMetricsCollector{}
//	idx, _ := geo3d.NewRTree(geo3d.OpClassBox, geo3d.WithMetricsCollector(metrics))
//	// ... use idx ...
//	stats := metrics.GetStats()
//	fmt.Printf("Inserts: %d, Splits: %d\n", stats.InsertCount, stats.SplitCount)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := geo3d.NewJSONLogger(slog.LevelInfo)
//	idx, _ := geo3d.NewOctree(geo3d.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMaxEntries sets the R-tree node capacity.
func WithMaxEntries(n int) Option {
	return func(o *options) {
		o.maxEntries = n
	}
}

// WithLeafCapacity sets the number of points an octree leaf holds before
// it splits.
func WithLeafCapacity(n int) Option {
	return func(o *options) {
		o.leafCapacity = n
	}
}

// WithMaxDepth bounds the number of inner octree levels. Leaves at the
// bound grow without splitting.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		o.maxDepth = n
	}
}

// WithCentroid selects how octree splits pick their centroid.
func WithCentroid(c spgist.Centroid) Option {
	return func(o *options) {
		o.centroid = c
	}
}

// WithSearchConcurrency bounds the number of query sets SearchBatch runs
// at once. Values below 1 remove the bound.
func WithSearchConcurrency(n int) Option {
	return func(o *options) {
		o.searchConcurrency = n
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector:  NoopMetricsCollector{},
		logger:            NoopLogger(),
		maxEntries:        rtree.DefaultMaxEntries,
		leafCapacity:      octree.DefaultLeafCapacity,
		maxDepth:          octree.DefaultMaxDepth,
		centroid:          spgist.CentroidMean,
		searchConcurrency: runtime.GOMAXPROCS(0),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
