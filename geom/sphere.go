package geom

import (
	"fmt"
	"math"

	"github.com/hupe1980/geo3d/internal/fcmp"
)

// Sphere is the solid ball of the given Radius around Center.
type Sphere struct {
	Center Point
	Radius float64
}

// Kind implements Shape.
func (Sphere) Kind() Kind { return KindSphere }

// BoundingBox implements Shape: Center ± Radius on every axis.
func (s Sphere) BoundingBox() Box {
	r := s.Radius
	return Box{
		Low:  Point{X: s.Center.X - r, Y: s.Center.Y - r, Z: s.Center.Z - r},
		High: Point{X: s.Center.X + r, Y: s.Center.Y + r, Z: s.Center.Z + r},
	}
}

// ContainsPoint reports whether p lies inside or on the sphere.
func (s Sphere) ContainsPoint(p Point) bool {
	return fcmp.FPle(s.Center.Distance(p), s.Radius)
}

// IntersectsBox reports whether the sphere and b share a point.
func (s Sphere) IntersectsBox(b Box) bool {
	return fcmp.FPle(b.DistanceToPoint(s.Center), s.Radius)
}

// ContainsBox reports whether all of b lies inside the sphere.
func (s Sphere) ContainsBox(b Box) bool {
	for _, c := range b.Corners() {
		if !s.ContainsPoint(c) {
			return false
		}
	}
	return true
}

// DistanceToPoint returns the distance from p to the sphere, zero inside.
func (s Sphere) DistanceToPoint(p Point) float64 {
	return math.Max(0, s.Center.Distance(p)-s.Radius)
}

// DistanceToBox returns the distance between the sphere and b.
func (s Sphere) DistanceToBox(b Box) float64 {
	return math.Max(0, b.DistanceToPoint(s.Center)-s.Radius)
}

func (s Sphere) String() string { return fmt.Sprintf("<%v,%g>", s.Center, s.Radius) }
