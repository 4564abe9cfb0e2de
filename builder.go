// This file implements index-specific fluent builder APIs for creating and
// configuring indexes. Builders are immutable: each method returns a new
// builder with the updated configuration.

package geo3d

// =============================================================================
// R-tree Builder (Immutable)
// =============================================================================

// RTree creates a new R-tree builder over keys of the given operator class.
//
// Example:
//
//	idx, err := geo3d.RTree(geo3d.OpClassBox).
//	    MaxEntries(16).
//	    Logger(geo3d.NewTextLogger(slog.LevelDebug)).
//	    Build()
func RTree(opclass OpClass) RTreeBuilder {
	return RTreeBuilder{opclass: opclass}
}

// RTreeBuilder is an immutable fluent builder for R-tree indexes.
type RTreeBuilder struct {
	opclass     OpClass
	maxEntries  int
	logger      *Logger
	metrics     MetricsCollector
	concurrency int
}

// MaxEntries sets the node capacity.
func (b RTreeBuilder) MaxEntries(n int) RTreeBuilder {
	b.maxEntries = n
	return b
}

// Logger sets the logger.
func (b RTreeBuilder) Logger(l *Logger) RTreeBuilder {
	b.logger = l
	return b
}

// Metrics sets the metrics collector.
func (b RTreeBuilder) Metrics(mc MetricsCollector) RTreeBuilder {
	b.metrics = mc
	return b
}

// SearchConcurrency bounds the parallelism of SearchBatch.
func (b RTreeBuilder) SearchConcurrency(n int) RTreeBuilder {
	b.concurrency = n
	return b
}

// Build creates the index.
func (b RTreeBuilder) Build() (*Index, error) {
	var opts []Option
	if b.maxEntries != 0 {
		opts = append(opts, WithMaxEntries(b.maxEntries))
	}
	if b.logger != nil {
		opts = append(opts, WithLogger(b.logger))
	}
	if b.metrics != nil {
		opts = append(opts, WithMetricsCollector(b.metrics))
	}
	if b.concurrency != 0 {
		opts = append(opts, WithSearchConcurrency(b.concurrency))
	}
	return NewRTree(b.opclass, opts...)
}

// =============================================================================
// Octree Builder (Immutable)
// =============================================================================

// Octree creates a new point octree builder.
//
// Example:
//
//	idx, err := geo3d.Octree().
//	    LeafCapacity(8).
//	    Median().
//	    Build()
func Octree() OctreeBuilder {
	return OctreeBuilder{centroid: CentroidMean}
}

// OctreeBuilder is an immutable fluent builder for octree indexes.
type OctreeBuilder struct {
	leafCapacity int
	maxDepth     int
	centroid     Centroid
	logger       *Logger
	metrics      MetricsCollector
	concurrency  int
}

// LeafCapacity sets the number of points a leaf holds before it splits.
func (b OctreeBuilder) LeafCapacity(n int) OctreeBuilder {
	b.leafCapacity = n
	return b
}

// MaxDepth bounds the number of inner levels.
func (b OctreeBuilder) MaxDepth(n int) OctreeBuilder {
	b.maxDepth = n
	return b
}

// Mean splits leaves at the mean of their points.
func (b OctreeBuilder) Mean() OctreeBuilder {
	b.centroid = CentroidMean
	return b
}

// Median splits leaves at the per-axis median of their points.
func (b OctreeBuilder) Median() OctreeBuilder {
	b.centroid = CentroidMedian
	return b
}

// Logger sets the logger.
func (b OctreeBuilder) Logger(l *Logger) OctreeBuilder {
	b.logger = l
	return b
}

// Metrics sets the metrics collector.
func (b OctreeBuilder) Metrics(mc MetricsCollector) OctreeBuilder {
	b.metrics = mc
	return b
}

// SearchConcurrency bounds the parallelism of SearchBatch.
func (b OctreeBuilder) SearchConcurrency(n int) OctreeBuilder {
	b.concurrency = n
	return b
}

// Build creates the index.
func (b OctreeBuilder) Build() (*Index, error) {
	opts := []Option{WithCentroid(b.centroid)}
	if b.leafCapacity != 0 {
		opts = append(opts, WithLeafCapacity(b.leafCapacity))
	}
	if b.maxDepth != 0 {
		opts = append(opts, WithMaxDepth(b.maxDepth))
	}
	if b.logger != nil {
		opts = append(opts, WithLogger(b.logger))
	}
	if b.metrics != nil {
		opts = append(opts, WithMetricsCollector(b.metrics))
	}
	if b.concurrency != 0 {
		opts = append(opts, WithSearchConcurrency(b.concurrency))
	}
	return NewOctree(opts...)
}
