package geom

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"

	"github.com/hupe1980/geo3d/internal/fcmp"
)

// Point is a location in 3-D space.
type Point struct {
	X, Y, Z float64
}

// Pt is shorthand for Point{x, y, z}.
func Pt(x, y, z float64) Point { return Point{X: x, Y: y, Z: z} }

// Kind implements Shape.
func (Point) Kind() Kind { return KindPoint }

// BoundingBox implements Shape. The box of a point is degenerate.
func (p Point) BoundingBox() Box { return Box{Low: p, High: p} }

// Coord returns the coordinate along axis 0 (x), 1 (y) or 2 (z).
func (p Point) Coord(axis int) float64 {
	switch axis {
	case 0:
		return p.X
	case 1:
		return p.Y
	default:
		return p.Z
	}
}

// WithCoord returns a copy of p with the coordinate along axis replaced.
func (p Point) WithCoord(axis int, v float64) Point {
	switch axis {
	case 0:
		p.X = v
	case 1:
		p.Y = v
	default:
		p.Z = v
	}
	return p
}

// Vector converts p into an r3 vector.
func (p Point) Vector() r3.Vector { return r3.Vector{X: p.X, Y: p.Y, Z: p.Z} }

// FromVector converts an r3 vector into a Point.
func FromVector(v r3.Vector) Point { return Point{X: v.X, Y: v.Y, Z: v.Z} }

// Equal reports whether p and q coincide within fcmp.Epsilon on every axis.
func (p Point) Equal(q Point) bool {
	return fcmp.FPeq(p.X, q.X) && fcmp.FPeq(p.Y, q.Y) && fcmp.FPeq(p.Z, q.Z)
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Sqrt((p.X-q.X)*(p.X-q.X) + (p.Y-q.Y)*(p.Y-q.Y) + (p.Z-q.Z)*(p.Z-q.Z))
}

// HasNaN reports whether any coordinate is NaN.
func (p Point) HasNaN() bool {
	return math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsNaN(p.Z)
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g,%g)", p.X, p.Y, p.Z)
}
