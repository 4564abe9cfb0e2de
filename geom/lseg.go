package geom

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"

	"github.com/hupe1980/geo3d/internal/fcmp"
)

// Lseg is a line segment between A and B.
type Lseg struct {
	A, B Point
}

// Kind implements Shape.
func (Lseg) Kind() Kind { return KindLseg }

// BoundingBox implements Shape.
func (s Lseg) BoundingBox() Box { return NewBox(s.A, s.B) }

// Length returns the distance between the endpoints.
func (s Lseg) Length() float64 { return s.A.Distance(s.B) }

// At returns the point A + t*(B-A).
func (s Lseg) At(t float64) Point {
	return FromVector(s.A.Vector().Add(s.B.Vector().Sub(s.A.Vector()).Mul(t)))
}

// ClosestPoint returns the point of s nearest to p.
func (s Lseg) ClosestPoint(p Point) Point {
	d := s.B.Vector().Sub(s.A.Vector())
	n2 := d.Norm2()
	if n2 == 0 {
		return s.A
	}
	t := p.Vector().Sub(s.A.Vector()).Dot(d) / n2
	return s.At(math.Max(0, math.Min(1, t)))
}

// DistanceToPoint returns the distance from p to the closest point of s.
func (s Lseg) DistanceToPoint(p Point) float64 {
	return p.Distance(s.ClosestPoint(p))
}

// ContainsPoint reports whether p lies on s.
func (s Lseg) ContainsPoint(p Point) bool {
	return fcmp.FPzero(s.DistanceToPoint(p))
}

// IntersectsBox reports whether s shares at least one point with b.
func (s Lseg) IntersectsBox(b Box) bool {
	return clip(s.A.Vector(), s.B.Vector().Sub(s.A.Vector()), 0, 1, b, fcmp.Epsilon)
}

// ContainsBox reports whether every point of b lies on s.
func (s Lseg) ContainsBox(b Box) bool {
	for _, c := range b.Corners() {
		if !s.ContainsPoint(c) {
			return false
		}
	}
	return true
}

func (s Lseg) String() string { return fmt.Sprintf("[%v,%v]", s.A, s.B) }

// clip reports whether the parametric line o + t*d, t in [tmin, tmax],
// meets b widened by pad on every side (slab method).
func clip(o, d r3.Vector, tmin, tmax float64, b Box, pad float64) bool {
	for axis := 0; axis < 3; axis++ {
		lo := b.Lower(axis) - pad
		hi := b.Upper(axis) + pad
		oa, da := component(o, axis), component(d, axis)
		if da == 0 {
			if oa < lo || oa > hi {
				return false
			}
			continue
		}
		t1 := (lo - oa) / da
		t2 := (hi - oa) / da
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return false
		}
	}
	return true
}

func component(v r3.Vector, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}
