package spgist

import (
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/geo3d/geom"
	"github.com/hupe1980/geo3d/strategy"
	"github.com/hupe1980/geo3d/testutil"
)

func TestConfig(t *testing.T) {
	cfg := New().Config()

	assert.Equal(t, geom.KindPoint, cfg.PrefixKind)
	assert.Equal(t, 8, cfg.NumNodes)
	assert.False(t, cfg.Labeled)
	assert.True(t, cfg.CanReturnData)
}

func TestChoose(t *testing.T) {
	s := New()

	out, err := s.Choose(ChooseIn{Centroid: geom.Pt(0, 0, 0), Point: geom.Pt(-1, -1, 1)})
	require.NoError(t, err)
	assert.Equal(t, 6, out.Node)
	assert.Equal(t, geom.Pt(-1, -1, 1), out.Rest)

	out, err = s.Choose(ChooseIn{Centroid: geom.Pt(0, 0, 0), Point: geom.Pt(-1, -1, 1), AllTheSame: true})
	require.NoError(t, err)
	assert.Equal(t, 0, out.Node)

	_, err = s.Choose(ChooseIn{Centroid: geom.Pt(0, 0, 0), Point: geom.Pt(math.NaN(), 0, 0)})
	assert.True(t, errors.Is(err, ErrImpossibleOctant))
}

func TestPickSplit(t *testing.T) {
	points := []geom.Point{
		geom.Pt(0, 0, 0),
		geom.Pt(1, 1, 1),
		geom.Pt(2, 2, 2),
		geom.Pt(9, 9, 9),
	}

	tests := []struct {
		name     string
		centroid Centroid
		want     geom.Point
		nodes    []int
	}{
		{"mean", CentroidMean, geom.Pt(3, 3, 3), []int{2, 2, 2, 4}},
		{"median", CentroidMedian, geom.Pt(2, 2, 2), []int{2, 2, 0, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := New(WithCentroid(tt.centroid)).PickSplit(points)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Centroid)
			assert.Equal(t, tt.nodes, out.Nodes)
			assert.Equal(t, points, out.Leaves)
		})
	}

	_, err := New().PickSplit(nil)
	assert.True(t, errors.Is(err, ErrNoPoints))

	_, err = New().PickSplit([]geom.Point{geom.Pt(0, math.NaN(), 0), geom.Pt(1, 1, 1)})
	assert.True(t, errors.Is(err, ErrImpossibleOctant))
}

func TestInnerConsistentDirectional(t *testing.T) {
	s := New()
	c := geom.Pt(0, 0, 0)

	tests := []struct {
		name  string
		op    strategy.Operator
		query geom.Shape
		want  Octants
	}{
		{"left of point right of centroid", strategy.Left, geom.Pt(5, 0, 0), AllOctants},
		{"left of point left of centroid", strategy.Left, geom.Pt(-5, 0, 0), LeftOctants},
		{"right", strategy.Right, geom.Pt(5, 0, 0), RightOctants},
		{"below", strategy.Below, geom.NewBox(geom.Pt(0, -3, 0), geom.Pt(1, -2, 1)), BelowOctants},
		{"above", strategy.Above, geom.Pt(0, 3, 0), AboveOctants},
		{"front", strategy.Front, geom.Sphere{Center: geom.Pt(0, 0, -9), Radius: 1}, FrontOctants},
		{"back", strategy.Back, geom.Lseg{A: geom.Pt(0, 0, 1), B: geom.Pt(0, 0, 2)}, BackOctants},
		{"same", strategy.Same, geom.Pt(-1, 1, -1), Octant(4).Mask()},
		{"contained by box", strategy.ContainedBy, geom.NewBox(geom.Pt(1, 1, 1), geom.Pt(2, 2, 2)), Octant(5).Mask()},
		{"contained by sphere", strategy.ContainedBy, geom.Sphere{Center: geom.Pt(0, 0, 0), Radius: 1}, AllOctants},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := s.InnerConsistent(InnerIn{
				Centroid: c,
				ScanKeys: []ScanKey{{Strategy: strategy.Make(tt.query.Kind(), tt.op), Query: tt.query}},
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want.Nodes(), out.Nodes)
			assert.Nil(t, out.Distances)
		})
	}
}

func TestInnerConsistentIntersectsKeys(t *testing.T) {
	s := New()
	q := geom.Pt(-5, 5, 0)

	out, err := s.InnerConsistent(InnerIn{
		Centroid: geom.Pt(0, 0, 0),
		ScanKeys: []ScanKey{
			{Strategy: strategy.Make(geom.KindPoint, strategy.Left), Query: geom.Pt(-5, 0, 0)},
			{Strategy: strategy.Make(geom.KindPoint, strategy.Below), Query: geom.Pt(0, -5, 0)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, (LeftOctants & BelowOctants).Nodes(), out.Nodes)

	// Contradictory keys leave nothing to visit.
	out, err = s.InnerConsistent(InnerIn{
		Centroid: geom.Pt(0, 0, 0),
		ScanKeys: []ScanKey{
			{Strategy: strategy.Make(geom.KindPoint, strategy.Left), Query: geom.Pt(-5, 0, 0)},
			{Strategy: strategy.Make(geom.KindPoint, strategy.Right), Query: geom.Pt(5, 0, 0)},
			{Strategy: strategy.Make(geom.KindPoint, strategy.Same), Query: q},
		},
		OrderBys: []geom.Point{q},
	})
	require.NoError(t, err)
	assert.Empty(t, out.Nodes)
	assert.Empty(t, out.Distances)
}

func TestInnerConsistentErrors(t *testing.T) {
	s := New()
	c := geom.Pt(0, 0, 0)

	tests := []struct {
		name string
		key  ScanKey
	}{
		{"invalid number", ScanKey{Strategy: 0, Query: c}},
		{"unsupported operator", ScanKey{Strategy: strategy.Make(geom.KindPoint, strategy.OverLeft), Query: c}},
		{"same on box", ScanKey{Strategy: strategy.Make(geom.KindBox, strategy.Same), Query: geom.Box{}}},
		{"distance as scan key", ScanKey{Strategy: strategy.Make(geom.KindPoint, strategy.Distance), Query: c}},
		{"kind mismatch", ScanKey{Strategy: strategy.Make(geom.KindBox, strategy.Left), Query: c}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, allTheSame := range []bool{false, true} {
				_, err := s.InnerConsistent(InnerIn{Centroid: c, ScanKeys: []ScanKey{tt.key}, AllTheSame: allTheSame})
				require.Error(t, err)
				assert.True(t, errors.Is(err, strategy.ErrInvalidStrategy))
			}

			_, err := s.LeafConsistent(c, []ScanKey{tt.key}, nil)
			assert.True(t, errors.Is(err, strategy.ErrInvalidStrategy))
		})
	}
}

func TestInnerConsistentAllTheSame(t *testing.T) {
	q := geom.Pt(3, 4, 0)
	parent := geom.NewBox(geom.Pt(0, 0, 0), geom.Pt(1, 1, 1))

	out, err := New().InnerConsistent(InnerIn{
		Centroid:   geom.Pt(0.5, 0.5, 0.5),
		ScanKeys:   []ScanKey{{Strategy: strategy.Make(geom.KindPoint, strategy.Left), Query: geom.Pt(-5, 0, 0)}},
		OrderBys:   []geom.Point{q},
		Traversal:  &parent,
		AllTheSame: true,
	})
	require.NoError(t, err)
	assert.Equal(t, AllOctants.Nodes(), out.Nodes)
	require.Len(t, out.Traversal, 8)
	for i := range out.Nodes {
		assert.Equal(t, parent, out.Traversal[i])
		assert.InDelta(t, parent.DistanceToPoint(q), out.Distances[i][0], 1e-12)
	}
}

func TestInnerConsistentOrderBy(t *testing.T) {
	s := New()
	c := geom.Pt(0, 0, 0)
	q := geom.Pt(3, 4, -1)

	out, err := s.InnerConsistent(InnerIn{Centroid: c, OrderBys: []geom.Point{q}})
	require.NoError(t, err)
	require.Len(t, out.Nodes, 8)
	require.Len(t, out.Distances, 8)
	require.Len(t, out.Traversal, 8)

	// q lies in octant 1.
	assert.Equal(t, 0.0, out.Distances[0][0])
	// Octant 7 is left, below and back of the centroid.
	assert.InDelta(t, math.Sqrt(3*3+4*4+1*1), out.Distances[6][0], 1e-5)

	// Descend into octant 1 and split again: the regions nest.
	parent := out.Traversal[0]
	child, err := s.InnerConsistent(InnerIn{Centroid: geom.Pt(1, 1, -1), OrderBys: []geom.Point{q}, Traversal: &parent})
	require.NoError(t, err)
	for _, region := range child.Traversal {
		assert.True(t, geom.Contains(parent, region) || geom.Size(region) == 0)
	}
}

// TestOrderByLowerBound checks that the distance reported for a node never
// exceeds the distance to a point classified into it.
func TestOrderByLowerBound(t *testing.T) {
	rng := testutil.NewRNG(5)
	s := New()

	for i := 0; i < 200; i++ {
		c := rng.Point(-10, 10)
		q := rng.Point(-20, 20)
		out, err := s.InnerConsistent(InnerIn{Centroid: c, OrderBys: []geom.Point{q}})
		require.NoError(t, err)

		for _, p := range rng.Points(20, -20, 20) {
			o, err := GetOctant(c, p)
			require.NoError(t, err)
			require.LessOrEqual(t, out.Distances[o.Node()][0], p.Distance(q)+1e-9)
		}
	}
}

// TestInnerConsistentSoundness checks that a point satisfying a scan key is
// never in an octant InnerConsistent excludes.
func TestInnerConsistentSoundness(t *testing.T) {
	rng := testutil.NewRNG(99)
	s := New()

	ops := []strategy.Operator{
		strategy.Left, strategy.Right, strategy.Below, strategy.Above,
		strategy.Front, strategy.Back, strategy.ContainedBy, strategy.Same,
	}

	for kind := geom.Kind(0); kind < geom.NumKinds; kind++ {
		for _, op := range ops {
			if op == strategy.Same && kind != geom.KindPoint {
				continue
			}
			n := strategy.Make(kind, op)

			t.Run(n.String(), func(t *testing.T) {
				for i := 0; i < 200; i++ {
					c := rng.Point(0, 10)
					q := rng.Shape(kind, 0, 10)
					keys := []ScanKey{{Strategy: n, Query: q}}

					out, err := s.InnerConsistent(InnerIn{Centroid: c, ScanKeys: keys})
					require.NoError(t, err)
					var mask Octants
					for _, node := range out.Nodes {
						mask |= Octant(node + 1).Mask()
					}

					for _, p := range candidates(rng, q) {
						leaf, err := s.LeafConsistent(p, keys, nil)
						require.NoError(t, err)
						assert.False(t, leaf.Recheck)
						if !leaf.Match {
							continue
						}
						o, err := GetOctant(c, p)
						require.NoError(t, err)
						require.True(t, mask.Has(o), "centroid %v query %v point %v octant %d mask %v", c, q, p, o, mask)
					}
				}
			})
		}
	}
}

func TestInnerConsistentWithinEpsilonOfPlane(t *testing.T) {
	s := New()
	c := geom.Pt(0, 0, 0)

	// Each point matches its query only within fcmp.Epsilon, while the query
	// itself lies on the other side of the x=0 plane.
	tests := []struct {
		name  string
		key   ScanKey
		point geom.Point
	}{
		{
			"same",
			ScanKey{Strategy: strategy.Make(geom.KindPoint, strategy.Same), Query: geom.Pt(-1.3e-6, 1, 1)},
			geom.Pt(-0.5e-6, 1, 1),
		},
		{
			"contained by box",
			ScanKey{Strategy: strategy.Make(geom.KindBox, strategy.ContainedBy), Query: geom.NewBox(geom.Pt(-3, 1, 1), geom.Pt(-1.5e-6, 2, 2))},
			geom.Pt(-0.7e-6, 1.5, 1.5),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keys := []ScanKey{tt.key}
			leaf, err := s.LeafConsistent(tt.point, keys, nil)
			require.NoError(t, err)
			require.True(t, leaf.Match)

			o, err := GetOctant(c, tt.point)
			require.NoError(t, err)
			require.True(t, RightOctants.Has(o))

			out, err := s.InnerConsistent(InnerIn{Centroid: c, ScanKeys: keys})
			require.NoError(t, err)
			assert.Contains(t, out.Nodes, o.Node())
		})
	}
}

// candidates returns points likely to satisfy predicates against q: points
// on or inside q as well as random points around it.
func candidates(rng *testutil.RNG, q geom.Shape) []geom.Point {
	pts := rng.Points(10, -2, 12)
	switch s := q.(type) {
	case geom.Point:
		pts = append(pts, s)
	case geom.Lseg:
		for i := 0; i <= 10; i++ {
			pts = append(pts, s.At(float64(i)/10))
		}
	case geom.Line:
		for i := -10; i <= 10; i++ {
			pts = append(pts, s.At(float64(i)))
		}
	case *geom.Path:
		for _, seg := range s.Segments() {
			pts = append(pts, seg.At(rng.Float64()))
		}
	case *geom.Polygon:
		pts = append(pts, s.Points...)
	default:
		b := q.BoundingBox()
		for i := 0; i < 10; i++ {
			pts = append(pts, rng.PointIn(b))
		}
	}
	return pts
}

func TestLeafConsistent(t *testing.T) {
	s := New()
	p := geom.Pt(1, 1, 1)

	tests := []struct {
		name  string
		keys  []ScanKey
		match bool
	}{
		{"no keys", nil, true},
		{"same", []ScanKey{{strategy.Make(geom.KindPoint, strategy.Same), geom.Pt(1, 1, 1)}}, true},
		{"left", []ScanKey{{strategy.Make(geom.KindPoint, strategy.Left), geom.Pt(2, 0, 0)}}, true},
		{"not right", []ScanKey{{strategy.Make(geom.KindPoint, strategy.Right), geom.Pt(2, 0, 0)}}, false},
		{"in sphere", []ScanKey{{strategy.Make(geom.KindSphere, strategy.ContainedBy), geom.Sphere{Center: geom.Pt(0, 0, 0), Radius: 2}}}, true},
		{"on line", []ScanKey{{strategy.Make(geom.KindLine, strategy.ContainedBy), geom.NewLine(geom.Pt(0, 0, 0), geom.Pt(2, 2, 2))}}, true},
		{"all keys must hold", []ScanKey{
			{strategy.Make(geom.KindPoint, strategy.Left), geom.Pt(2, 0, 0)},
			{strategy.Make(geom.KindPoint, strategy.Back), geom.Pt(0, 0, 5)},
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := s.LeafConsistent(p, tt.keys, []geom.Point{geom.Pt(1, 1, 4)})
			require.NoError(t, err)
			assert.Equal(t, tt.match, out.Match)
			assert.False(t, out.Recheck)
			if tt.match {
				assert.Equal(t, []float64{3}, out.Distances)
			} else {
				assert.Nil(t, out.Distances)
			}
		})
	}
}
