package testutil

import (
	"math"
	"math/rand"
	"sort"
	"sync"

	"github.com/hupe1980/geo3d/geom"
)

// SearchResult represents a search result.
type SearchResult struct {
	ID       uint64
	Distance float64
}

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Uniform returns a pseudo-random number in [minVal, maxVal).
func (r *RNG) Uniform(minVal, maxVal float64) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.uniformLocked(minVal, maxVal)
}

func (r *RNG) uniformLocked(minVal, maxVal float64) float64 {
	return minVal + r.rand.Float64()*(maxVal-minVal)
}

func (r *RNG) pointLocked(lo, hi float64) geom.Point {
	return geom.Pt(r.uniformLocked(lo, hi), r.uniformLocked(lo, hi), r.uniformLocked(lo, hi))
}

// Point returns a point drawn uniformly from the cube [lo, hi)^3.
func (r *RNG) Point(lo, hi float64) geom.Point {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pointLocked(lo, hi)
}

// Points returns num uniform points in the cube [lo, hi)^3.
// Locks only once per call (preferred over calling Point in a loop).
func (r *RNG) Points(num int, lo, hi float64) []geom.Point {
	r.mu.Lock()
	defer r.mu.Unlock()

	pts := make([]geom.Point, num)
	for i := range pts {
		pts[i] = r.pointLocked(lo, hi)
	}
	return pts
}

// GridPoints returns num points snapped to an integer grid inside [lo, hi).
// Duplicates and points on dividing planes are frequent, which exercises
// tie-breaking.
func (r *RNG) GridPoints(num int, lo, hi int) []geom.Point {
	r.mu.Lock()
	defer r.mu.Unlock()

	span := hi - lo
	pts := make([]geom.Point, num)
	for i := range pts {
		pts[i] = geom.Pt(
			float64(lo+r.rand.Intn(span)),
			float64(lo+r.rand.Intn(span)),
			float64(lo+r.rand.Intn(span)),
		)
	}
	return pts
}

// ClusteredPoints generates points around a number of random cluster centers
// with Gaussian spread.
func (r *RNG) ClusteredPoints(num, clusters int, lo, hi, spread float64) []geom.Point {
	r.mu.Lock()
	defer r.mu.Unlock()

	centers := make([]geom.Point, clusters)
	for i := range centers {
		centers[i] = r.pointLocked(lo, hi)
	}

	pts := make([]geom.Point, num)
	for i := range pts {
		c := centers[r.rand.Intn(clusters)]
		pts[i] = geom.Pt(
			c.X+r.rand.NormFloat64()*spread,
			c.Y+r.rand.NormFloat64()*spread,
			c.Z+r.rand.NormFloat64()*spread,
		)
	}
	return pts
}

func (r *RNG) boxLocked(lo, hi, maxSide float64) geom.Box {
	low := r.pointLocked(lo, hi)
	return geom.NewBox(low, geom.Pt(
		low.X+r.rand.Float64()*maxSide,
		low.Y+r.rand.Float64()*maxSide,
		low.Z+r.rand.Float64()*maxSide,
	))
}

// Box returns a box whose low corner lies in [lo, hi)^3 and whose sides are
// at most maxSide long.
func (r *RNG) Box(lo, hi, maxSide float64) geom.Box {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.boxLocked(lo, hi, maxSide)
}

// Boxes returns num random boxes, see Box.
func (r *RNG) Boxes(num int, lo, hi, maxSide float64) []geom.Box {
	r.mu.Lock()
	defer r.mu.Unlock()

	boxes := make([]geom.Box, num)
	for i := range boxes {
		boxes[i] = r.boxLocked(lo, hi, maxSide)
	}
	return boxes
}

// PointIn returns a point drawn uniformly from b.
func (r *RNG) PointIn(b geom.Box) geom.Point {
	r.mu.Lock()
	defer r.mu.Unlock()
	return geom.Pt(
		r.uniformLocked(b.Low.X, b.High.X),
		r.uniformLocked(b.Low.Y, b.High.Y),
		r.uniformLocked(b.Low.Z, b.High.Z),
	)
}

// BoxIn returns a box inside b.
func (r *RNG) BoxIn(b geom.Box) geom.Box {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := geom.Pt(
		r.uniformLocked(b.Low.X, b.High.X),
		r.uniformLocked(b.Low.Y, b.High.Y),
		r.uniformLocked(b.Low.Z, b.High.Z),
	)
	q := geom.Pt(
		r.uniformLocked(b.Low.X, b.High.X),
		r.uniformLocked(b.Low.Y, b.High.Y),
		r.uniformLocked(b.Low.Z, b.High.Z),
	)
	return geom.NewBox(p, q)
}

// Shape returns a random shape of the given kind near the cube [lo, hi)^3.
// Extended shapes span up to a quarter of the cube.
func (r *RNG) Shape(kind geom.Kind, lo, hi float64) geom.Shape {
	r.mu.Lock()
	defer r.mu.Unlock()

	size := (hi - lo) / 4
	switch kind {
	case geom.KindPoint:
		return r.pointLocked(lo, hi)
	case geom.KindLseg:
		a := r.pointLocked(lo, hi)
		return geom.Lseg{A: a, B: r.nearLocked(a, size)}
	case geom.KindLine:
		a := r.pointLocked(lo, hi)
		b := r.nearLocked(a, size)
		// Axis-parallel lines have bounded extents on some axes.
		switch r.rand.Intn(4) {
		case 0:
			b.X = a.X
		case 1:
			b.Y, b.Z = a.Y, a.Z
		}
		if b == a {
			b.Z += size
		}
		return geom.NewLine(a, b)
	case geom.KindBox:
		return r.boxLocked(lo, hi, size)
	case geom.KindPath:
		n := 2 + r.rand.Intn(4)
		pts := make([]geom.Point, n)
		pts[0] = r.pointLocked(lo, hi)
		for i := 1; i < n; i++ {
			pts[i] = r.nearLocked(pts[i-1], size)
		}
		return geom.NewPath(r.rand.Intn(2) == 0, pts...)
	case geom.KindPolygon:
		// A triangle in an axis plane through a random point.
		a := r.pointLocked(lo, hi)
		b, c := a, a
		axis := r.rand.Intn(3)
		u, v := (axis+1)%3, (axis+2)%3
		b = b.WithCoord(u, b.Coord(u)+r.uniformLocked(0.1, 1)*size)
		c = c.WithCoord(v, c.Coord(v)+r.uniformLocked(0.1, 1)*size)
		return geom.NewPolygon(a, b, c)
	default:
		return geom.Sphere{Center: r.pointLocked(lo, hi), Radius: r.uniformLocked(0, size)}
	}
}

func (r *RNG) nearLocked(p geom.Point, size float64) geom.Point {
	return geom.Pt(
		p.X+r.uniformLocked(-size, size),
		p.Y+r.uniformLocked(-size, size),
		p.Z+r.uniformLocked(-size, size),
	)
}

// ComputeRecall computes recall@k: the fraction of ground truth IDs found in
// the approximate results.
func ComputeRecall(groundTruth, approximate []SearchResult) float64 {
	if len(groundTruth) == 0 {
		return 0
	}

	gtSet := make(map[uint64]struct{}, len(groundTruth))
	for _, r := range groundTruth {
		gtSet[r.ID] = struct{}{}
	}

	hits := 0
	for _, r := range approximate {
		if _, ok := gtSet[r.ID]; ok {
			hits++
		}
	}

	return float64(hits) / float64(len(groundTruth))
}

// BruteForceNearest performs an exact k nearest neighbor scan for ground
// truth. IDs are positions in shapes; ties are broken by ID.
func BruteForceNearest(shapes []geom.Shape, query geom.Shape, k int) []SearchResult {
	results := make([]SearchResult, len(shapes))
	for i, s := range shapes {
		results[i] = SearchResult{ID: uint64(i), Distance: geom.Distance(query, s)}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Distance != results[j].Distance {
			return results[i].Distance < results[j].Distance
		}
		return results[i].ID < results[j].ID
	})

	if len(results) > k {
		results = results[:k]
	}
	return results
}

// SameDistances reports whether two result lists have pairwise equal
// distances within tol. Results with equal distances may legitimately differ
// in ID, so this is the comparison to use for nearest neighbor checks.
func SameDistances(a, b []SearchResult, tol float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i].Distance-b[i].Distance) > tol {
			return false
		}
	}
	return true
}
