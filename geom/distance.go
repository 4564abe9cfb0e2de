package geom

import (
	"math"

	"github.com/golang/geo/r3"
)

// Distance returns the exact distance between the closest points of a and b,
// zero when they share a point. Boxes, spheres and polygons are solid
// regions; paths are their segment chains.
func Distance(a, b Shape) float64 {
	if a == nil || b == nil {
		return math.Inf(1)
	}
	switch p := a.(type) {
	case Point:
		return PointDistance(p, b)
	case Sphere:
		return math.Max(0, Distance(p.Center, b)-p.Radius)
	}
	switch q := b.(type) {
	case Point:
		return PointDistance(q, a)
	case Sphere:
		return math.Max(0, Distance(q.Center, a)-q.Radius)
	}

	d := math.Inf(1)
	for _, x := range piecesOf(a) {
		for _, y := range piecesOf(b) {
			d = math.Min(d, x.distance(y))
			if d == 0 {
				return 0
			}
		}
	}
	return d
}

type pieceKind uint8

const (
	pieceLinear pieceKind = iota
	pieceBox
	piecePolygon
)

// piece is a convex or planar primitive a shape decomposes into.
type piece struct {
	kind pieceKind
	lin  linear
	box  Box
	poly *Polygon
}

func piecesOf(s Shape) []piece {
	switch v := s.(type) {
	case Lseg:
		return []piece{{kind: pieceLinear, lin: segLinear(v)}}
	case Line:
		return []piece{{kind: pieceLinear, lin: lineLinear(v)}}
	case Box:
		return []piece{{kind: pieceBox, box: v}}
	case *Path:
		return chainPieces(v.Points, v.Segments())
	case *Polygon:
		if len(v.Points) < 3 || v.Normal().Norm2() == 0 {
			return chainPieces(v.Points, v.Edges())
		}
		return []piece{{kind: piecePolygon, poly: v}}
	default:
		return []piece{{kind: pieceBox, box: s.BoundingBox()}}
	}
}

// chainPieces turns a vertex chain into segments. A lone vertex becomes a
// zero-length segment.
func chainPieces(points []Point, segs []Lseg) []piece {
	if len(points) == 1 {
		segs = []Lseg{{A: points[0], B: points[0]}}
	}
	out := make([]piece, len(segs))
	for i, s := range segs {
		out[i] = piece{kind: pieceLinear, lin: segLinear(s)}
	}
	return out
}

func (x piece) distance(y piece) float64 {
	if x.kind > y.kind {
		x, y = y, x
	}
	switch {
	case x.kind == pieceLinear && y.kind == pieceLinear:
		return linearDistance(x.lin, y.lin)
	case x.kind == pieceLinear && y.kind == pieceBox:
		return linearBoxDistance(x.lin, y.box)
	case x.kind == pieceLinear:
		return linearPolygonDistance(x.lin, y.poly)
	case y.kind == pieceBox:
		return x.box.DistanceToBox(y.box)
	case x.kind == pieceBox:
		return boxPolygonDistance(x.box, y.poly)
	default:
		return polygonDistance(x.poly, y.poly)
	}
}

// linear is p + t*d, with t in [0, 1] when bounded.
type linear struct {
	p, d    r3.Vector
	bounded bool
}

func segLinear(s Lseg) linear {
	return linear{p: s.A.Vector(), d: s.B.Vector().Sub(s.A.Vector()), bounded: true}
}

// lineLinear maps a line with a zero direction to its single point.
func lineLinear(l Line) linear {
	d := l.Dir.Vector()
	return linear{p: l.P.Vector(), d: d, bounded: d.Norm2() == 0}
}

func (l linear) at(t float64) r3.Vector { return l.p.Add(l.d.Mul(t)) }

func (l linear) contains(t float64) bool { return !l.bounded || (t >= 0 && t <= 1) }

func (l linear) endpoints() []r3.Vector {
	if !l.bounded {
		return nil
	}
	return []r3.Vector{l.p, l.p.Add(l.d)}
}

func (l linear) distanceToPoint(q r3.Vector) float64 {
	n2 := l.d.Norm2()
	if n2 == 0 {
		return q.Sub(l.p).Norm()
	}
	t := q.Sub(l.p).Dot(l.d) / n2
	if l.bounded {
		t = math.Max(0, math.Min(1, t))
	}
	return q.Sub(l.at(t)).Norm()
}

// linearDistance finds the closest pair of two linears: the interior
// stationary point when it lies in both domains, otherwise a pair with at
// least one endpoint.
func linearDistance(a, b linear) float64 {
	r := a.p.Sub(b.p)
	aa, ee, ab := a.d.Norm2(), b.d.Norm2(), a.d.Dot(b.d)
	c, f := a.d.Dot(r), b.d.Dot(r)
	if denom := aa*ee - ab*ab; aa > 0 && ee > 0 && denom > 1e-12*aa*ee {
		s := (ab*f - c*ee) / denom
		t := (aa*f - ab*c) / denom
		if a.contains(s) && b.contains(t) {
			return a.at(s).Sub(b.at(t)).Norm()
		}
	}

	d := math.Inf(1)
	for _, e := range a.endpoints() {
		d = math.Min(d, b.distanceToPoint(e))
	}
	for _, e := range b.endpoints() {
		d = math.Min(d, a.distanceToPoint(e))
	}
	if math.IsInf(d, 1) {
		// Two parallel unbounded lines.
		d = b.distanceToPoint(a.p)
	}
	return d
}

func linearBoxDistance(l linear, b Box) float64 {
	tmin, tmax := math.Inf(-1), math.Inf(1)
	if l.bounded {
		tmin, tmax = 0, 1
	}
	if clip(l.p, l.d, tmin, tmax, b, 0) {
		return 0
	}
	d := math.Inf(1)
	for _, e := range l.endpoints() {
		d = math.Min(d, b.DistanceToPoint(FromVector(e)))
	}
	for _, e := range boxEdges(b) {
		d = math.Min(d, linearDistance(l, e))
	}
	return d
}

// boxEdges returns the twelve edges of b as segments between corners whose
// indexes differ in one bit.
func boxEdges(b Box) []linear {
	c := b.Corners()
	out := make([]linear, 0, 12)
	for i := range c {
		for bit := 1; bit < len(c); bit <<= 1 {
			if i&bit == 0 {
				out = append(out, segLinear(Lseg{A: c[i], B: c[i|bit]}))
			}
		}
	}
	return out
}

// linearPolygonDistance is zero when l pierces the polygon's interior and
// otherwise the closest approach to its boundary or of an endpoint.
func linearPolygonDistance(l linear, p *Polygon) float64 {
	n := p.Normal()
	if den := n.Dot(l.d); den != 0 {
		t := n.Dot(p.Points[0].Vector().Sub(l.p)) / den
		if l.contains(t) && p.windingContains(FromVector(l.at(t)), n) {
			return 0
		}
	}
	d := math.Inf(1)
	for _, e := range l.endpoints() {
		d = math.Min(d, p.DistanceToPoint(FromVector(e)))
	}
	for _, e := range p.Edges() {
		d = math.Min(d, linearDistance(l, segLinear(e)))
	}
	return d
}

func boxPolygonDistance(b Box, p *Polygon) float64 {
	d := math.Inf(1)
	for _, e := range p.Edges() {
		if d = math.Min(d, linearBoxDistance(segLinear(e), b)); d == 0 {
			return 0
		}
	}
	for _, e := range boxEdges(b) {
		d = math.Min(d, linearPolygonDistance(e, p))
	}
	return d
}

// polygonDistance relies on two touching polygons having a boundary point of
// one inside the other.
func polygonDistance(a, b *Polygon) float64 {
	d := math.Inf(1)
	for _, e := range a.Edges() {
		d = math.Min(d, linearPolygonDistance(segLinear(e), b))
	}
	for _, e := range b.Edges() {
		d = math.Min(d, linearPolygonDistance(segLinear(e), a))
	}
	return d
}
