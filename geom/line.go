package geom

import (
	"fmt"
	"math"

	"github.com/hupe1980/geo3d/internal/fcmp"
)

// Line is the infinite line through P with direction Dir.
type Line struct {
	P   Point
	Dir Point
}

// NewLine returns the line through a and b.
func NewLine(a, b Point) Line {
	return Line{P: a, Dir: Point{X: b.X - a.X, Y: b.Y - a.Y, Z: b.Z - a.Z}}
}

// Kind implements Shape.
func (Line) Kind() Kind { return KindLine }

// IsVertical reports whether x is constant along the line.
func (l Line) IsVertical() bool { return l.Dir.X == 0 }

// IsHorizontal reports whether y is constant along the line.
func (l Line) IsHorizontal() bool { return l.Dir.Y == 0 }

// IsPerpendicular reports whether z is constant along the line.
func (l Line) IsPerpendicular() bool { return l.Dir.Z == 0 }

// BoundingBox implements Shape. The box is unbounded along every axis the
// line is not constant on.
func (l Line) BoundingBox() Box {
	b := Box{Low: l.P, High: l.P}
	for axis := 0; axis < 3; axis++ {
		if l.Dir.Coord(axis) != 0 {
			b.Low = b.Low.WithCoord(axis, math.Inf(-1))
			b.High = b.High.WithCoord(axis, math.Inf(1))
		}
	}
	return b
}

// At returns P + t*Dir.
func (l Line) At(t float64) Point {
	return FromVector(l.P.Vector().Add(l.Dir.Vector().Mul(t)))
}

// DistanceToPoint returns the perpendicular distance from p to the line.
func (l Line) DistanceToPoint(p Point) float64 {
	d := l.Dir.Vector()
	n := d.Norm()
	if n == 0 {
		return p.Distance(l.P)
	}
	return p.Vector().Sub(l.P.Vector()).Cross(d).Norm() / n
}

// ContainsPoint reports whether p lies on the line.
func (l Line) ContainsPoint(p Point) bool {
	return fcmp.FPzero(l.DistanceToPoint(p))
}

// IntersectsBox reports whether the line passes through b.
func (l Line) IntersectsBox(b Box) bool {
	return clip(l.P.Vector(), l.Dir.Vector(), math.Inf(-1), math.Inf(1), b, fcmp.Epsilon)
}

// ContainsBox reports whether every point of b lies on the line.
func (l Line) ContainsBox(b Box) bool {
	for _, c := range b.Corners() {
		if !l.ContainsPoint(c) {
			return false
		}
	}
	return true
}

func (l Line) String() string { return fmt.Sprintf("{%v,%v}", l.P, l.Dir) }
