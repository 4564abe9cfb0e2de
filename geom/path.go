package geom

import (
	"math"
)

// Path is a sequence of vertices joined by segments. A closed path also
// joins the last vertex back to the first.
type Path struct {
	Points []Point
	Closed bool
	// Box is the bounding box of Points, maintained by NewPath.
	Box Box
}

// NewPath returns a path over pts with its bounding box computed.
func NewPath(closed bool, pts ...Point) *Path {
	return &Path{Points: pts, Closed: closed, Box: boundPoints(pts)}
}

// Kind implements Shape.
func (*Path) Kind() Kind { return KindPath }

// BoundingBox implements Shape.
func (p *Path) BoundingBox() Box { return p.Box }

// Segments returns the segments of the path in order.
func (p *Path) Segments() []Lseg {
	n := len(p.Points)
	if n < 2 {
		return nil
	}
	segs := make([]Lseg, 0, n)
	for i := 0; i+1 < n; i++ {
		segs = append(segs, Lseg{A: p.Points[i], B: p.Points[i+1]})
	}
	if p.Closed && n > 2 {
		segs = append(segs, Lseg{A: p.Points[n-1], B: p.Points[0]})
	}
	return segs
}

// ContainsPoint reports whether q lies on the path.
func (p *Path) ContainsPoint(q Point) bool {
	if len(p.Points) == 1 {
		return p.Points[0].Equal(q)
	}
	for _, s := range p.Segments() {
		if s.ContainsPoint(q) {
			return true
		}
	}
	return false
}

// DistanceToPoint returns the distance from q to the nearest point of the
// path, or +Inf for an empty path.
func (p *Path) DistanceToPoint(q Point) float64 {
	if len(p.Points) == 1 {
		return p.Points[0].Distance(q)
	}
	d := math.Inf(1)
	for _, s := range p.Segments() {
		d = math.Min(d, s.DistanceToPoint(q))
	}
	return d
}

// IntersectsBox reports whether any part of the path lies in b.
func (p *Path) IntersectsBox(b Box) bool {
	if len(p.Points) == 1 {
		return b.ContainsPoint(p.Points[0])
	}
	for _, s := range p.Segments() {
		if s.IntersectsBox(b) {
			return true
		}
	}
	return false
}

func boundPoints(pts []Point) Box {
	if len(pts) == 0 {
		return Box{}
	}
	b := Box{Low: pts[0], High: pts[0]}
	for _, q := range pts[1:] {
		b.Low = Point{X: math.Min(b.Low.X, q.X), Y: math.Min(b.Low.Y, q.Y), Z: math.Min(b.Low.Z, q.Z)}
		b.High = Point{X: math.Max(b.High.X, q.X), Y: math.Max(b.High.Y, q.Y), Z: math.Max(b.High.Z, q.Z)}
	}
	return b
}
