package geom

// The helpers below relate an index key (a box or a point) to an arbitrary
// query shape. When exact is false the answer was derived from the query's
// bounding box only and is a necessary, not sufficient, condition.

// BoxOverlaps reports whether b and s share at least one point.
func BoxOverlaps(b Box, s Shape) (ok, exact bool) {
	switch q := s.(type) {
	case Point:
		return b.ContainsPoint(q), true
	case Lseg:
		return q.IntersectsBox(b), true
	case Line:
		return q.IntersectsBox(b), true
	case Box:
		return Overlaps(b, q), true
	case *Path:
		return q.IntersectsBox(b), true
	case Sphere:
		return q.IntersectsBox(b), true
	default:
		return Overlaps(b, s.BoundingBox()), false
	}
}

// BoxContains reports whether b contains all of s. A box contains a shape
// exactly when it contains the shape's bounding box.
func BoxContains(b Box, s Shape) bool {
	return Contains(b, s.BoundingBox())
}

// BoxContainedBy reports whether every point of b lies in s.
func BoxContainedBy(b Box, s Shape) (ok, exact bool) {
	switch q := s.(type) {
	case Point:
		return Same(b, q.BoundingBox()), true
	case Lseg:
		return q.ContainsBox(b), true
	case Line:
		return q.ContainsBox(b), true
	case Box:
		return Contains(q, b), true
	case Sphere:
		return q.ContainsBox(b), true
	default:
		return Contains(s.BoundingBox(), b), false
	}
}

// PointIn reports whether p lies in (or on) s. It is exact for every kind.
func PointIn(p Point, s Shape) bool {
	switch q := s.(type) {
	case Point:
		return p.Equal(q)
	case Lseg:
		return q.ContainsPoint(p)
	case Line:
		return q.ContainsPoint(p)
	case Box:
		return q.ContainsPoint(p)
	case *Path:
		return q.ContainsPoint(p)
	case *Polygon:
		return q.ContainsPoint(p)
	case Sphere:
		return q.ContainsPoint(p)
	default:
		return false
	}
}

// PointContains reports whether s is reduced to the single point p.
func PointContains(p Point, s Shape) bool {
	return Same(p.BoundingBox(), s.BoundingBox())
}

// PointDistance returns the exact distance from p to the closest point of s.
func PointDistance(p Point, s Shape) float64 {
	switch q := s.(type) {
	case Point:
		return p.Distance(q)
	case Lseg:
		return q.DistanceToPoint(p)
	case Line:
		return q.DistanceToPoint(p)
	case Box:
		return q.DistanceToPoint(p)
	case *Path:
		return q.DistanceToPoint(p)
	case *Polygon:
		return q.DistanceToPoint(p)
	case Sphere:
		return q.DistanceToPoint(p)
	default:
		return s.BoundingBox().DistanceToPoint(p)
	}
}
