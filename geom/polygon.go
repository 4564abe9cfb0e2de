package geom

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/hupe1980/geo3d/internal/fcmp"
)

// Polygon is a planar region bounded by a closed ring of vertices.
type Polygon struct {
	Points []Point
	// Box is the bounding box of Points, maintained by NewPolygon.
	Box Box
}

// NewPolygon returns a polygon over pts with its bounding box computed.
func NewPolygon(pts ...Point) *Polygon {
	return &Polygon{Points: pts, Box: boundPoints(pts)}
}

// Kind implements Shape.
func (*Polygon) Kind() Kind { return KindPolygon }

// BoundingBox implements Shape.
func (p *Polygon) BoundingBox() Box { return p.Box }

// Edges returns the boundary segments of the polygon.
func (p *Polygon) Edges() []Lseg {
	return (&Path{Points: p.Points, Closed: true}).Segments()
}

// Normal returns the (unnormalized) plane normal by Newell's method. A zero
// vector means the vertices are collinear or coincident.
func (p *Polygon) Normal() r3.Vector {
	var n r3.Vector
	for i, cur := range p.Points {
		next := p.Points[(i+1)%len(p.Points)]
		n.X += (cur.Y - next.Y) * (cur.Z + next.Z)
		n.Y += (cur.Z - next.Z) * (cur.X + next.X)
		n.Z += (cur.X - next.X) * (cur.Y + next.Y)
	}
	return n
}

// ContainsPoint reports whether q lies in the polygon's plane, inside or on
// its boundary.
func (p *Polygon) ContainsPoint(q Point) bool {
	switch len(p.Points) {
	case 0:
		return false
	case 1:
		return p.Points[0].Equal(q)
	}
	if p.onBoundary(q) {
		return true
	}
	n := p.Normal()
	if n.Norm2() == 0 {
		return false
	}
	if !fcmp.FPzero(q.Vector().Sub(p.Points[0].Vector()).Dot(n.Normalize())) {
		return false
	}
	return p.windingContains(q, n)
}

// DistanceToPoint returns the distance from q to the nearest point of the
// polygon region.
func (p *Polygon) DistanceToPoint(q Point) float64 {
	switch len(p.Points) {
	case 0:
		return math.Inf(1)
	case 1:
		return p.Points[0].Distance(q)
	}
	d := math.Inf(1)
	for _, e := range p.Edges() {
		d = math.Min(d, e.DistanceToPoint(q))
	}
	n := p.Normal()
	if n.Norm2() == 0 {
		return d
	}
	u := n.Normalize()
	h := q.Vector().Sub(p.Points[0].Vector()).Dot(u)
	proj := FromVector(q.Vector().Sub(u.Mul(h)))
	if p.windingContains(proj, n) {
		return math.Min(d, math.Abs(h))
	}
	return d
}

func (p *Polygon) onBoundary(q Point) bool {
	for _, e := range p.Edges() {
		if e.ContainsPoint(q) {
			return true
		}
	}
	return false
}

// windingContains runs the crossing-number test after projecting onto the
// coordinate plane most orthogonal to n.
func (p *Polygon) windingContains(q Point, n r3.Vector) bool {
	var u, v int
	switch n.Abs().LargestComponent() {
	case r3.XAxis:
		u, v = 1, 2
	case r3.YAxis:
		u, v = 2, 0
	default:
		u, v = 0, 1
	}
	qu, qv := q.Coord(u), q.Coord(v)
	inside := false
	for i, j := 0, len(p.Points)-1; i < len(p.Points); j, i = i, i+1 {
		iu, iv := p.Points[i].Coord(u), p.Points[i].Coord(v)
		ju, jv := p.Points[j].Coord(u), p.Points[j].Coord(v)
		if (iv > qv) != (jv > qv) {
			cross := (ju-iu)*(qv-iv)/(jv-iv) + iu
			if qu < cross {
				inside = !inside
			}
		}
	}
	return inside
}
