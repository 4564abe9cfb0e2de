package geo3d

import (
	"context"
	"time"

	"github.com/hupe1980/geo3d/geom"
	"github.com/hupe1980/geo3d/gist"
	"github.com/hupe1980/geo3d/index"
	"github.com/hupe1980/geo3d/index/octree"
	"github.com/hupe1980/geo3d/index/rtree"
	"github.com/hupe1980/geo3d/spgist"
	"github.com/hupe1980/geo3d/strategy"
)

type (
	// Query is one search condition.
	Query = index.Query

	// Hits holds the ids matched by a search.
	Hits = index.Hits

	// Neighbor is one nearest-neighbor result.
	Neighbor = index.Neighbor

	// Item is an id and shape for bulk loading.
	Item = index.Item

	// OpClass selects the key kind of an R-tree.
	OpClass = gist.OpClass

	// Centroid selects the octree split centroid.
	Centroid = spgist.Centroid
)

const (
	OpClassBox     = gist.OpClassBox
	OpClassPoint   = gist.OpClassPoint
	OpClassPath    = gist.OpClassPath
	OpClassPolygon = gist.OpClassPolygon
	OpClassSphere  = gist.OpClassSphere

	CentroidMean   = spgist.CentroidMean
	CentroidMedian = spgist.CentroidMedian
)

// NewQuery builds the query applying op to shape.
func NewQuery(op strategy.Operator, shape geom.Shape) Query {
	return index.NewQuery(op, shape)
}

type bulkLoader interface {
	Build(ctx context.Context, items []index.Item) error
}

// Index is a spatial index with logging, metrics and error normalization.
// It is safe for concurrent use.
type Index struct {
	idx     index.Index
	bulk    bulkLoader
	logger  *Logger
	metrics MetricsCollector
	opts    options
}

// NewRTree creates an R-tree over keys of the given operator class.
func NewRTree(opclass OpClass, optFns ...Option) (*Index, error) {
	o := applyOptions(optFns)
	logger := o.logger.WithIndex("RTree")

	t, err := rtree.New(
		rtree.WithOpClass(opclass),
		rtree.WithMaxEntries(o.maxEntries),
		rtree.WithLogger(logger.Logger),
		rtree.WithMetrics(o.metricsCollector),
	)
	if err != nil {
		return nil, translateError(err)
	}

	return &Index{idx: t, bulk: t, logger: logger, metrics: o.metricsCollector, opts: o}, nil
}

// NewOctree creates a point octree.
func NewOctree(optFns ...Option) (*Index, error) {
	o := applyOptions(optFns)
	logger := o.logger.WithIndex("Octree")

	t, err := octree.New(
		octree.WithLeafCapacity(o.leafCapacity),
		octree.WithMaxDepth(o.maxDepth),
		octree.WithCentroid(o.centroid),
		octree.WithLogger(logger.Logger),
		octree.WithMetrics(o.metricsCollector),
	)
	if err != nil {
		return nil, translateError(err)
	}

	return &Index{idx: t, bulk: t, logger: logger, metrics: o.metricsCollector, opts: o}, nil
}

// Name returns the name of the underlying index.
func (x *Index) Name() string { return x.idx.Name() }

// Len returns the number of stored shapes.
func (x *Index) Len() int { return x.idx.Len() }

// Host returns the underlying index.
func (x *Index) Host() index.Index { return x.idx }

func kindOf(s geom.Shape) geom.Kind {
	if s == nil {
		return geom.NumKinds
	}
	return s.Kind()
}

// Insert stores shape under id.
func (x *Index) Insert(ctx context.Context, id uint32, shape geom.Shape) error {
	err := translateError(x.idx.Insert(ctx, id, shape))
	x.logger.LogInsert(ctx, id, kindOf(shape), err)
	return err
}

// Build stores items. On an empty R-tree the items are packed bottom-up.
// Items are validated before any of them is stored.
func (x *Index) Build(ctx context.Context, items []Item) error {
	err := translateError(x.bulk.Build(ctx, items))
	x.logger.LogBuild(ctx, len(items), err)
	return err
}

// Search returns the ids satisfying every query. Ids in Hits.Recheck were
// matched on an approximation and need an exact test by the caller.
func (x *Index) Search(ctx context.Context, queries ...Query) (Hits, error) {
	hits, err := x.idx.Search(ctx, queries...)
	err = translateError(err)
	if err != nil {
		x.logger.LogSearch(ctx, len(queries), 0, 0, err)
		return hits, err
	}
	x.logger.LogSearch(ctx, len(queries), int(hits.Matches.GetCardinality()), int(hits.Recheck.GetCardinality()), nil)
	return hits, nil
}

// SearchBatch runs each query set as one Search, concurrently. Results are
// in input order. The first failure cancels the remaining searches.
func (x *Index) SearchBatch(ctx context.Context, batches [][]Query) ([]Hits, error) {
	start := time.Now()
	res, err := index.SearchBatch(ctx, x.idx, batches, x.opts.searchConcurrency)
	err = translateError(err)
	x.metrics.RecordBatchSearch(len(batches), time.Since(start), err)
	if err != nil {
		x.logger.ErrorContext(ctx, "batch search failed", "batches", len(batches), "error", err)
		return nil, err
	}
	x.logger.DebugContext(ctx, "batch search completed", "batches", len(batches))
	return res, nil
}

// Nearest returns up to k ids ordered by exact distance to q. The R-tree
// accepts any query shape, the octree only points.
func (x *Index) Nearest(ctx context.Context, q geom.Shape, k int) ([]Neighbor, error) {
	res, err := x.idx.Nearest(ctx, q, k)
	err = translateError(err)
	x.logger.WithK(k).LogNearest(ctx, kindOf(q), len(res), err)
	return res, err
}

// Close releases the index.
func (x *Index) Close() error {
	err := translateError(x.idx.Close())
	if err == nil {
		x.logger.Info("index closed")
	}
	return err
}
