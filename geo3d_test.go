package geo3d_test

import (
	"context"
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/geo3d"
	"github.com/hupe1980/geo3d/geom"
	"github.com/hupe1980/geo3d/index/octree"
	"github.com/hupe1980/geo3d/index/rtree"
	"github.com/hupe1980/geo3d/strategy"
)

func unitBox(x, y, z float64) geom.Box {
	return geom.NewBox(geom.Pt(x, y, z), geom.Pt(x+1, y+1, z+1))
}

func TestRTree(t *testing.T) {
	ctx := context.Background()

	idx, err := geo3d.NewRTree(geo3d.OpClassBox, geo3d.WithMaxEntries(4))
	require.NoError(t, err)
	defer idx.Close()

	assert.Equal(t, "RTree", idx.Name())

	for i := 0; i < 20; i++ {
		require.NoError(t, idx.Insert(ctx, uint32(i), unitBox(float64(i)*2, 0, 0)))
	}
	assert.Equal(t, 20, idx.Len())

	t.Run("search", func(t *testing.T) {
		hits, err := idx.Search(ctx, geo3d.NewQuery(strategy.Overlap, geom.NewBox(geom.Pt(3.5, 0, 0), geom.Pt(6.5, 1, 1))))
		require.NoError(t, err)
		assert.Equal(t, []uint32{2, 3}, hits.Matches.ToArray())
		assert.True(t, hits.Recheck.IsEmpty())
	})

	t.Run("conjunction", func(t *testing.T) {
		hits, err := idx.Search(ctx,
			geo3d.NewQuery(strategy.Right, geom.Pt(10, 0, 0)),
			geo3d.NewQuery(strategy.Left, geom.Pt(16, 0, 0)),
		)
		require.NoError(t, err)
		assert.Equal(t, []uint32{6, 7}, hits.All().ToArray())
	})

	t.Run("nearest", func(t *testing.T) {
		nn, err := idx.Nearest(ctx, geom.Pt(-3, 0.5, 0.5), 3)
		require.NoError(t, err)
		require.Len(t, nn, 3)
		assert.Equal(t, uint32(0), nn[0].ID)
		assert.InDelta(t, 3.0, nn[0].Distance, 1e-9)
		assert.Equal(t, uint32(1), nn[1].ID)
		assert.Equal(t, uint32(2), nn[2].ID)
	})

	t.Run("nearest to a segment", func(t *testing.T) {
		seg := geom.Lseg{A: geom.Pt(4.5, 3, 0.5), B: geom.Pt(7.5, 3, 0.5)}
		nn, err := idx.Nearest(ctx, seg, 3)
		require.NoError(t, err)
		require.Len(t, nn, 3)
		assert.ElementsMatch(t, []uint32{2, 3}, []uint32{nn[0].ID, nn[1].ID})
		assert.InDelta(t, 2.0, nn[0].Distance, 1e-9)
		assert.InDelta(t, 2.0, nn[1].Distance, 1e-9)
		assert.Equal(t, uint32(4), nn[2].ID)
		assert.InDelta(t, math.Sqrt(4.25), nn[2].Distance, 1e-9)
	})

	t.Run("host", func(t *testing.T) {
		tree, ok := idx.Host().(*rtree.RTree)
		require.True(t, ok)
		assert.Greater(t, tree.Height(), 1)
	})
}

func TestSphereRecheck(t *testing.T) {
	ctx := context.Background()

	idx, err := geo3d.NewRTree(geo3d.OpClassSphere)
	require.NoError(t, err)

	require.NoError(t, idx.Insert(ctx, 1, geom.Sphere{Center: geom.Pt(0, 0, 0), Radius: 1}))

	// The corner of the bounding box lies outside the sphere.
	hits, err := idx.Search(ctx, geo3d.NewQuery(strategy.Overlap, geom.NewBox(geom.Pt(0.9, 0.9, 0.9), geom.Pt(2, 2, 2))))
	require.NoError(t, err)
	assert.True(t, hits.Matches.IsEmpty())
	assert.Equal(t, []uint32{1}, hits.Recheck.ToArray())
}

func TestOctree(t *testing.T) {
	ctx := context.Background()

	idx, err := geo3d.NewOctree(geo3d.WithLeafCapacity(4), geo3d.WithCentroid(geo3d.CentroidMedian))
	require.NoError(t, err)
	defer idx.Close()

	assert.Equal(t, "Octree", idx.Name())

	items := make([]geo3d.Item, 0, 125)
	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			for z := 0; z < 5; z++ {
				items = append(items, geo3d.Item{ID: uint32(len(items)), Shape: geom.Pt(float64(x), float64(y), float64(z))})
			}
		}
	}
	require.NoError(t, idx.Build(ctx, items))
	assert.Equal(t, 125, idx.Len())

	hits, err := idx.Search(ctx, geo3d.NewQuery(strategy.ContainedBy, geom.NewBox(geom.Pt(0, 0, 0), geom.Pt(1, 1, 1))))
	require.NoError(t, err)
	assert.Equal(t, uint64(8), hits.Matches.GetCardinality())

	hits, err = idx.Search(ctx, geo3d.NewQuery(strategy.Same, geom.Pt(2, 3, 4)))
	require.NoError(t, err)
	assert.Equal(t, []uint32{2*25 + 3*5 + 4}, hits.All().ToArray())

	nn, err := idx.Nearest(ctx, geom.Pt(4.1, 4.1, 4.1), 1)
	require.NoError(t, err)
	require.Len(t, nn, 1)
	assert.Equal(t, uint32(124), nn[0].ID)
	assert.InDelta(t, math.Sqrt(3*0.01), nn[0].Distance, 1e-9)

	tree, ok := idx.Host().(*octree.Octree)
	require.True(t, ok)
	assert.Greater(t, tree.Depth(), 0)
}

func TestSearchBatch(t *testing.T) {
	ctx := context.Background()

	idx, err := geo3d.NewRTree(geo3d.OpClassPoint, geo3d.WithSearchConcurrency(2))
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		require.NoError(t, idx.Insert(ctx, uint32(i), geom.Pt(float64(i), 0, 0)))
	}

	batches := make([][]geo3d.Query, 10)
	for i := range batches {
		batches[i] = []geo3d.Query{geo3d.NewQuery(strategy.Same, geom.Pt(float64(i), 0, 0))}
	}

	res, err := idx.SearchBatch(ctx, batches)
	require.NoError(t, err)
	require.Len(t, res, 10)
	for i, hits := range res {
		assert.Equal(t, []uint32{uint32(i)}, hits.All().ToArray())
	}

	batches[4] = []geo3d.Query{{Strategy: 0, Shape: geom.Pt(0, 0, 0)}}
	_, err = idx.SearchBatch(ctx, batches)
	assert.True(t, errors.Is(err, geo3d.ErrInvalidStrategy))
}

func TestErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid config", func(t *testing.T) {
		_, err := geo3d.NewRTree(geo3d.OpClassBox, geo3d.WithMaxEntries(2))
		assert.True(t, errors.Is(err, geo3d.ErrInvalidConfig))
		assert.True(t, errors.Is(err, rtree.ErrInvalidMaxEntries))

		_, err = geo3d.NewOctree(geo3d.WithLeafCapacity(1))
		assert.True(t, errors.Is(err, geo3d.ErrInvalidConfig))

		_, err = geo3d.NewOctree(geo3d.WithMaxDepth(0))
		assert.True(t, errors.Is(err, geo3d.ErrInvalidConfig))
		assert.True(t, errors.Is(err, octree.ErrInvalidMaxDepth))
	})

	t.Run("octree stores points only", func(t *testing.T) {
		idx, err := geo3d.NewOctree()
		require.NoError(t, err)

		err = idx.Insert(ctx, 1, unitBox(0, 0, 0))
		var sm *geo3d.ErrShapeMismatch
		require.True(t, errors.As(err, &sm))
		assert.Equal(t, geom.KindPoint, sm.Expected)
		assert.Equal(t, geom.KindBox, sm.Actual)
		assert.True(t, errors.Is(err, geo3d.ErrWrongShape))
	})

	t.Run("rtree rejects other kinds", func(t *testing.T) {
		idx, err := geo3d.NewRTree(geo3d.OpClassPolygon)
		require.NoError(t, err)

		err = idx.Insert(ctx, 1, geom.Pt(0, 0, 0))
		assert.True(t, errors.Is(err, geo3d.ErrWrongShape))

		err = idx.Insert(ctx, 2, nil)
		assert.True(t, errors.Is(err, geo3d.ErrWrongShape))
	})

	t.Run("nan point", func(t *testing.T) {
		idx, err := geo3d.NewOctree()
		require.NoError(t, err)

		err = idx.Insert(ctx, 1, geom.Pt(math.NaN(), 0, 0))
		assert.True(t, errors.Is(err, geo3d.ErrImpossibleOctant))
	})

	t.Run("duplicate", func(t *testing.T) {
		idx, err := geo3d.NewRTree(geo3d.OpClassBox)
		require.NoError(t, err)

		require.NoError(t, idx.Insert(ctx, 1, unitBox(0, 0, 0)))
		assert.True(t, errors.Is(idx.Insert(ctx, 1, unitBox(1, 1, 1)), geo3d.ErrDuplicateID))
	})

	t.Run("invalid k", func(t *testing.T) {
		idx, err := geo3d.NewOctree()
		require.NoError(t, err)

		_, err = idx.Nearest(ctx, geom.Pt(0, 0, 0), 0)
		assert.True(t, errors.Is(err, geo3d.ErrInvalidK))
	})

	t.Run("octree orders by points only", func(t *testing.T) {
		idx, err := geo3d.NewOctree()
		require.NoError(t, err)

		_, err = idx.Nearest(ctx, unitBox(0, 0, 0), 1)
		assert.True(t, errors.Is(err, geo3d.ErrWrongShape))
	})

	t.Run("closed", func(t *testing.T) {
		idx, err := geo3d.NewRTree(geo3d.OpClassBox)
		require.NoError(t, err)

		require.NoError(t, idx.Close())
		assert.True(t, errors.Is(idx.Close(), geo3d.ErrClosed))
		assert.True(t, errors.Is(idx.Insert(ctx, 1, unitBox(0, 0, 0)), geo3d.ErrClosed))
		_, err = idx.Search(ctx)
		assert.True(t, errors.Is(err, geo3d.ErrClosed))
	})
}
