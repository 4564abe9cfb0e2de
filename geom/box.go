package geom

import (
	"fmt"
	"math"

	"github.com/hupe1980/geo3d/internal/fcmp"
)

// Box is an axis-aligned box. Boxes built with NewBox satisfy Low <= High
// on every axis; boxes violating it are not rejected, they simply have
// zero Size.
type Box struct {
	Low, High Point
}

// NewBox returns the box spanned by two opposite corners in any order.
func NewBox(a, b Point) Box {
	return Box{
		Low:  Point{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y), Z: math.Min(a.Z, b.Z)},
		High: Point{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y), Z: math.Max(a.Z, b.Z)},
	}
}

// Kind implements Shape.
func (Box) Kind() Kind { return KindBox }

// BoundingBox implements Shape.
func (b Box) BoundingBox() Box { return b }

// Center returns the midpoint of the box.
func (b Box) Center() Point {
	return Point{
		X: (b.Low.X + b.High.X) / 2,
		Y: (b.Low.Y + b.High.Y) / 2,
		Z: (b.Low.Z + b.High.Z) / 2,
	}
}

// Corners returns the eight corners of the box. Corner i takes the high
// coordinate on axis a when bit a of i is set.
func (b Box) Corners() [8]Point {
	var out [8]Point
	for i := range out {
		p := b.Low
		if i&1 != 0 {
			p.X = b.High.X
		}
		if i&2 != 0 {
			p.Y = b.High.Y
		}
		if i&4 != 0 {
			p.Z = b.High.Z
		}
		out[i] = p
	}
	return out
}

// ContainsPoint reports whether p lies inside or on the boundary of b.
func (b Box) ContainsPoint(p Point) bool {
	return fcmp.FPle(b.Low.X, p.X) && fcmp.FPge(b.High.X, p.X) &&
		fcmp.FPle(b.Low.Y, p.Y) && fcmp.FPge(b.High.Y, p.Y) &&
		fcmp.FPle(b.Low.Z, p.Z) && fcmp.FPge(b.High.Z, p.Z)
}

// DistanceToPoint returns the Euclidean distance from p to the closest point
// of b; zero when p is inside.
func (b Box) DistanceToPoint(p Point) float64 {
	dx := gap(p.X, b.Low.X, b.High.X)
	dy := gap(p.Y, b.Low.Y, b.High.Y)
	dz := gap(p.Z, b.Low.Z, b.High.Z)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// DistanceToBox returns the Euclidean distance between the closest points of
// a and b; zero when they overlap.
func (b Box) DistanceToBox(o Box) float64 {
	dx := intervalGap(b.Low.X, b.High.X, o.Low.X, o.High.X)
	dy := intervalGap(b.Low.Y, b.High.Y, o.Low.Y, o.High.Y)
	dz := intervalGap(b.Low.Z, b.High.Z, o.Low.Z, o.High.Z)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func (b Box) String() string {
	return fmt.Sprintf("(%v,%v)", b.High, b.Low)
}

func gap(v, lo, hi float64) float64 {
	switch {
	case v < lo:
		return lo - v
	case v > hi:
		return v - hi
	default:
		return 0
	}
}

func intervalGap(aLo, aHi, bLo, bHi float64) float64 {
	switch {
	case aHi < bLo:
		return bLo - aHi
	case bHi < aLo:
		return aLo - bHi
	default:
		return 0
	}
}

// Left reports whether a lies strictly at smaller x than b.
func Left(a, b Box) bool { return fcmp.FPlt(a.High.X, b.Low.X) }

// OverLeft reports whether a does not extend to the right of b.
func OverLeft(a, b Box) bool { return fcmp.FPle(a.High.X, b.High.X) }

// Right reports whether a lies strictly at greater x than b.
func Right(a, b Box) bool { return fcmp.FPgt(a.Low.X, b.High.X) }

// OverRight reports whether a does not extend to the left of b.
func OverRight(a, b Box) bool { return fcmp.FPge(a.Low.X, b.Low.X) }

// Below reports whether a lies strictly at smaller y than b.
func Below(a, b Box) bool { return fcmp.FPlt(a.High.Y, b.Low.Y) }

// OverBelow reports whether a does not extend above b.
func OverBelow(a, b Box) bool { return fcmp.FPle(a.High.Y, b.High.Y) }

// Above reports whether a lies strictly at greater y than b.
func Above(a, b Box) bool { return fcmp.FPgt(a.Low.Y, b.High.Y) }

// OverAbove reports whether a does not extend below b.
func OverAbove(a, b Box) bool { return fcmp.FPge(a.Low.Y, b.Low.Y) }

// Front reports whether a lies strictly at smaller z than b.
func Front(a, b Box) bool { return fcmp.FPlt(a.High.Z, b.Low.Z) }

// OverFront reports whether a does not extend behind b.
func OverFront(a, b Box) bool { return fcmp.FPle(a.High.Z, b.High.Z) }

// Back reports whether a lies strictly at greater z than b.
func Back(a, b Box) bool { return fcmp.FPgt(a.Low.Z, b.High.Z) }

// OverBack reports whether a does not extend in front of b.
func OverBack(a, b Box) bool { return fcmp.FPge(a.Low.Z, b.Low.Z) }

// Overlaps reports whether a and b share at least one point.
func Overlaps(a, b Box) bool {
	return fcmp.FPle(a.Low.X, b.High.X) && fcmp.FPle(b.Low.X, a.High.X) &&
		fcmp.FPle(a.Low.Y, b.High.Y) && fcmp.FPle(b.Low.Y, a.High.Y) &&
		fcmp.FPle(a.Low.Z, b.High.Z) && fcmp.FPle(b.Low.Z, a.High.Z)
}

// Contains reports whether a contains b.
func Contains(a, b Box) bool {
	return fcmp.FPle(a.Low.X, b.Low.X) && fcmp.FPge(a.High.X, b.High.X) &&
		fcmp.FPle(a.Low.Y, b.Low.Y) && fcmp.FPge(a.High.Y, b.High.Y) &&
		fcmp.FPle(a.Low.Z, b.Low.Z) && fcmp.FPge(a.High.Z, b.High.Z)
}

// Same reports whether a and b have equal corners within fcmp.Epsilon.
func Same(a, b Box) bool {
	return a.Low.Equal(b.Low) && a.High.Equal(b.High)
}
