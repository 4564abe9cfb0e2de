package spgist

import (
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/geo3d/geom"
	"github.com/hupe1980/geo3d/testutil"
)

func TestGetOctant(t *testing.T) {
	c := geom.Pt(0, 0, 0)

	tests := []struct {
		name string
		p    geom.Point
		want Octant
	}{
		{"centroid", geom.Pt(0, 0, 0), 1},
		{"right above front", geom.Pt(1, 1, -1), 1},
		{"right below front", geom.Pt(1, -1, -1), 2},
		{"left below front", geom.Pt(-1, -1, -1), 3},
		{"left above front", geom.Pt(-1, 1, -1), 4},
		{"right above back", geom.Pt(1, 1, 1), 5},
		{"right below back", geom.Pt(1, -1, 1), 6},
		{"left below back", geom.Pt(-1, -1, 1), 7},
		{"left above back", geom.Pt(-1, 1, 1), 8},
		{"on x plane", geom.Pt(0, 1, 1), 5},
		{"on y plane right", geom.Pt(1, 0, -1), 1},
		{"on y plane left", geom.Pt(-1, 0, -1), 3},
		{"on z plane", geom.Pt(-1, 1, 0), 4},
		{"on x and y planes back", geom.Pt(0, 0, 1), 5},
		{"within epsilon", geom.Pt(-1e-7, -1e-7, 1e-7), 1},
		{"infinite", geom.Pt(math.Inf(-1), math.Inf(1), math.Inf(1)), 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GetOctant(c, tt.p)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetOctantFrontAboveRight(t *testing.T) {
	rng := testutil.NewRNG(7)

	for i := 0; i < 1000; i++ {
		c := rng.Point(-1e6, 1e6)
		scale := math.Pow(10, float64(rng.Intn(12)-3))
		p := geom.Pt(
			c.X+(0.01+rng.Float64())*scale,
			c.Y+(0.01+rng.Float64())*scale,
			c.Z-(0.01+rng.Float64())*scale,
		)
		got, err := GetOctant(c, p)
		require.NoError(t, err)
		require.Equal(t, Octant(1), got, "centroid %v point %v", c, p)
	}
}

func TestGetOctantExhaustive(t *testing.T) {
	rng := testutil.NewRNG(11)
	c := geom.Pt(1, 1, 1)

	seen := Octants(0)
	for _, p := range rng.GridPoints(2000, -1, 4) {
		o, err := GetOctant(c, p)
		require.NoError(t, err)
		require.GreaterOrEqual(t, int(o), 1)
		require.LessOrEqual(t, int(o), 8)
		seen |= o.Mask()
	}
	assert.Equal(t, AllOctants, seen)
}

func TestGetOctantNaN(t *testing.T) {
	for _, p := range []geom.Point{
		geom.Pt(math.NaN(), 0, 0),
		geom.Pt(0, math.NaN(), 0),
		geom.Pt(math.NaN(), math.NaN(), math.NaN()),
	} {
		_, err := GetOctant(geom.Pt(0, 0, 0), p)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrImpossibleOctant))
		assert.True(t, errors.IsAssertionFailure(err))
	}
}

func TestOctants(t *testing.T) {
	m := Octant(1).Mask() | Octant(7).Mask()

	assert.True(t, m.Has(1))
	assert.True(t, m.Has(7))
	assert.False(t, m.Has(2))
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, []int{0, 6}, m.Nodes())
	assert.Equal(t, "{1,7}", m.String())
	assert.Equal(t, 6, Octant(7).Node())

	assert.Equal(t, Octants(0), LeftOctants&RightOctants)
	assert.Equal(t, AllOctants, AboveOctants|BelowOctants)
	assert.Equal(t, Octant(1).Mask(), RightOctants&AboveOctants&FrontOctants)
	assert.Equal(t, Octant(7).Mask(), LeftOctants&BelowOctants&BackOctants)
	assert.Equal(t, 8, AllOctants.Len())
}

func TestLsegOctants(t *testing.T) {
	c := geom.Pt(0, 0, 0)

	tests := []struct {
		name string
		seg  geom.Lseg
		want Octants
	}{
		{
			name: "inside one octant",
			seg:  geom.Lseg{A: geom.Pt(1, 1, -1), B: geom.Pt(2, 3, -4)},
			want: Octant(1).Mask(),
		},
		{
			name: "crosses x plane",
			seg:  geom.Lseg{A: geom.Pt(1, 1, -1), B: geom.Pt(-1, 1, -1)},
			want: Octant(1).Mask() | Octant(4).Mask(),
		},
		{
			name: "octant 1 to 7",
			seg:  geom.Lseg{A: geom.Pt(1, 2, -1), B: geom.Pt(-1, -1, 1)},
			want: Octant(1).Mask() | Octant(4).Mask() | Octant(5).Mask() | Octant(7).Mask() | Octant(8).Mask(),
		},
		{
			name: "through the centroid",
			seg:  geom.Lseg{A: geom.Pt(1, 1, -1), B: geom.Pt(-1, -1, 1)},
			want: AllOctants,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := lsegOctants(c, tt.seg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got, "got %v", got)
		})
	}
}

func TestLineOctants(t *testing.T) {
	c := geom.Pt(0, 0, 0)

	// Parallel to x, above and in front: both right and left.
	got := lineOctants(c, geom.NewLine(geom.Pt(5, 1, -1), geom.Pt(6, 1, -1)))
	assert.Equal(t, Octant(1).Mask()|Octant(4).Mask(), got)

	// A diagonal through the centroid touches every octant.
	got = lineOctants(c, geom.NewLine(geom.Pt(0, 0, 0), geom.Pt(1, 1, 1)))
	assert.Equal(t, AllOctants, got)

	// A diagonal avoiding the centroid misses at least one octant.
	got = lineOctants(c, geom.NewLine(geom.Pt(5, 1, 1), geom.Pt(6, 2, 2)))
	assert.NotEqual(t, AllOctants, got)
	assert.True(t, got.Has(5))
}

func TestBoxOctants(t *testing.T) {
	c := geom.Pt(0, 0, 0)

	got, err := boxOctants(c, geom.NewBox(geom.Pt(-1, -1, -1), geom.Pt(1, 1, 1)))
	require.NoError(t, err)
	assert.Equal(t, AllOctants, got)

	got, err = boxOctants(c, geom.NewBox(geom.Pt(1, 1, -3), geom.Pt(2, 2, -2)))
	require.NoError(t, err)
	assert.Equal(t, Octant(1).Mask(), got)

	got, err = boxOctants(c, geom.NewBox(geom.Pt(-1, 1, 1), geom.Pt(1, 2, 2)))
	require.NoError(t, err)
	assert.Equal(t, Octant(5).Mask()|Octant(8).Mask(), got)
}

func TestOctantBoxCoversOctant(t *testing.T) {
	rng := testutil.NewRNG(3)
	c := geom.Pt(0.5, -0.5, 2)

	for _, p := range rng.GridPoints(500, -3, 4) {
		o, err := GetOctant(c, p)
		require.NoError(t, err)
		assert.True(t, octantBox(c, o).ContainsPoint(p), "octant %d point %v", o, p)
	}
}
