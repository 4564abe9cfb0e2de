package geom

import (
	"math"

	"github.com/hupe1980/geo3d/internal/fcmp"
)

// Union returns the smallest box containing a and b. NaN bounds propagate to
// the high corner.
func Union(a, b Box) Box {
	return Box{
		Low: Point{
			X: fcmp.Min(a.Low.X, b.Low.X),
			Y: fcmp.Min(a.Low.Y, b.Low.Y),
			Z: fcmp.Min(a.Low.Z, b.Low.Z),
		},
		High: Point{
			X: fcmp.Max(a.High.X, b.High.X),
			Y: fcmp.Max(a.High.Y, b.High.Y),
			Z: fcmp.Max(a.High.Z, b.High.Z),
		},
	}
}

// UnionAll returns the union of all boxes. It returns the zero Box for an
// empty slice.
func UnionAll(boxes []Box) Box {
	if len(boxes) == 0 {
		return Box{}
	}
	u := boxes[0]
	for _, b := range boxes[1:] {
		u = Union(u, b)
	}
	return u
}

// Size returns the volume of b. A box that is degenerate on any axis
// (High <= Low) has size 0; otherwise a NaN high bound yields +Inf.
func Size(b Box) float64 {
	if fcmp.Le(b.High.X, b.Low.X) || fcmp.Le(b.High.Y, b.Low.Y) || fcmp.Le(b.High.Z, b.Low.Z) {
		return 0
	}
	if math.IsNaN(b.High.X) || math.IsNaN(b.High.Y) || math.IsNaN(b.High.Z) {
		return math.Inf(1)
	}
	return (b.High.X - b.Low.X) * (b.High.Y - b.Low.Y) * (b.High.Z - b.Low.Z)
}

// Penalty returns the growth in volume of orig when extended to cover add.
// Two infinite volumes produce 0 rather than NaN.
func Penalty(orig, add Box) float64 {
	u := Size(Union(orig, add))
	o := Size(orig)
	if math.IsInf(u, 1) && math.IsInf(o, 1) {
		return 0
	}
	return u - o
}

// SameKey reports bitwise-style equality of two keys: every bound compared
// with the total order, so NaN equals NaN.
func SameKey(a, b Box) bool {
	return fcmp.Eq(a.Low.X, b.Low.X) && fcmp.Eq(a.Low.Y, b.Low.Y) && fcmp.Eq(a.Low.Z, b.Low.Z) &&
		fcmp.Eq(a.High.X, b.High.X) && fcmp.Eq(a.High.Y, b.High.Y) && fcmp.Eq(a.High.Z, b.High.Z)
}

// Lower returns the low bound of b on axis.
func (b Box) Lower(axis int) float64 { return b.Low.Coord(axis) }

// Upper returns the high bound of b on axis.
func (b Box) Upper(axis int) float64 { return b.High.Coord(axis) }

// Extend returns b grown to cover p.
func Extend(b Box, p Point) Box {
	return Union(b, p.BoundingBox())
}
