package spgist

import (
	"math"
	"math/bits"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/golang/geo/r3"

	"github.com/hupe1980/geo3d/geom"
	"github.com/hupe1980/geo3d/internal/fcmp"
)

// NumNodes is the fan-out of an inner node.
const NumNodes = 8

// Octant numbers one of the eight regions around a centroid, 1 to 8.
type Octant uint8

// Node returns the 0-based node index of o.
func (o Octant) Node() int { return int(o) - 1 }

// Mask returns the set holding only o.
func (o Octant) Mask() Octants { return 1 << (o - 1) }

// Octants is a set of octants. Bit n stands for node n, that is octant n+1.
type Octants uint8

// AllOctants is the set of all eight octants.
const AllOctants Octants = 0xFF

// Octants lying on one side of a dividing plane.
const (
	RightOctants Octants = 1<<0 | 1<<1 | 1<<4 | 1<<5 // 1, 2, 5, 6
	LeftOctants  Octants = 1<<2 | 1<<3 | 1<<6 | 1<<7 // 3, 4, 7, 8
	AboveOctants Octants = 1<<0 | 1<<3 | 1<<4 | 1<<7 // 1, 4, 5, 8
	BelowOctants Octants = 1<<1 | 1<<2 | 1<<5 | 1<<6 // 2, 3, 6, 7
	FrontOctants Octants = 0x0F                      // 1-4
	BackOctants  Octants = 0xF0                      // 5-8
)

// Has reports whether o is in m.
func (m Octants) Has(o Octant) bool { return m&o.Mask() != 0 }

// Len returns the number of octants in m.
func (m Octants) Len() int { return bits.OnesCount8(uint8(m)) }

// Nodes returns the node indices in m in ascending order.
func (m Octants) Nodes() []int {
	nodes := make([]int, 0, m.Len())
	for n := 0; n < NumNodes; n++ {
		if m&(1<<n) != 0 {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

func (m Octants) String() string {
	parts := make([]string, 0, m.Len())
	for _, n := range m.Nodes() {
		parts = append(parts, strconv.Itoa(n+1))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// GetOctant classifies p relative to the centroid c. Points on a dividing
// plane resolve to the lowest-numbered adjacent octant, so c itself is in
// octant 1.
func GetOctant(c, p geom.Point) (Octant, error) {
	var base Octant
	if !fcmp.FPle(p.Z, c.Z) {
		base = 4
	}

	switch {
	case fcmp.FPge(p.Y, c.Y) && fcmp.FPge(p.X, c.X):
		return base + 1, nil
	case fcmp.FPlt(p.Y, c.Y) && fcmp.FPge(p.X, c.X):
		return base + 2, nil
	case fcmp.FPle(p.Y, c.Y) && fcmp.FPlt(p.X, c.X):
		return base + 3, nil
	case fcmp.FPgt(p.Y, c.Y) && fcmp.FPlt(p.X, c.X):
		return base + 4, nil
	}

	return 0, errors.Mark(
		errors.AssertionFailedf("point %v matches no octant of centroid %v", p, c),
		ErrImpossibleOctant,
	)
}

// sides is the set of halves of one axis a shape may reach: bit 0 is the
// low half (left, below, front), bit 1 the high half.
type sides uint8

const (
	lowSide  sides = 1
	highSide sides = 2
	twoSides       = lowSide | highSide
)

// sidesAt returns the halves a coordinate v belongs to. Values within
// fcmp.Epsilon of the dividing coordinate belong to both.
func sidesAt(v, c float64) sides {
	switch {
	case math.IsNaN(v) || fcmp.FPeq(v, c):
		return twoSides
	case v < c:
		return lowSide
	default:
		return highSide
	}
}

func (s sides) mask(low, high Octants) Octants {
	var m Octants
	if s&lowSide != 0 {
		m |= low
	}
	if s&highSide != 0 {
		m |= high
	}
	return m
}

// octantsOf returns the octants formed by every combination of the given
// per-axis halves.
func octantsOf(x, y, z sides) Octants {
	return x.mask(LeftOctants, RightOctants) &
		y.mask(BelowOctants, AboveOctants) &
		z.mask(FrontOctants, BackOctants)
}

// crossing returns the octants adjacent to p, a point on the dividing plane
// of axis: both halves of axis and, for the other axes, the side p lies on,
// or both when p is on that plane too. The result holds 2, 4 or 8 octants.
func crossing(c, p geom.Point, axis int) Octants {
	var s [3]sides
	for a := 0; a < 3; a++ {
		if a == axis {
			s[a] = twoSides
		} else {
			s[a] = sidesAt(p.Coord(a), c.Coord(a))
		}
	}
	return octantsOf(s[0], s[1], s[2])
}

// boxOctants returns the octants that may hold a point matching b. Points
// within fcmp.Epsilon of b match it but may sit across a dividing plane, so
// the corners of b widened by that much are classified.
func boxOctants(c geom.Point, b geom.Box) (Octants, error) {
	if b.ContainsPoint(c) {
		return AllOctants, nil
	}
	var m Octants
	for _, corner := range widen(b, fcmp.Epsilon).Corners() {
		o, err := GetOctant(c, corner)
		if err != nil {
			return 0, err
		}
		m |= o.Mask()
	}
	return m, nil
}

func widen(b geom.Box, d float64) geom.Box {
	b = geom.Extend(b, geom.Pt(b.Low.X-d, b.Low.Y-d, b.Low.Z-d))
	return geom.Extend(b, geom.Pt(b.High.X+d, b.High.Y+d, b.High.Z+d))
}

// lsegOctants returns the octants the segment s passes through: those of its
// endpoints and those around every point where it crosses a dividing plane.
func lsegOctants(c geom.Point, s geom.Lseg) (Octants, error) {
	oa, err := GetOctant(c, s.A)
	if err != nil {
		return 0, err
	}
	ob, err := GetOctant(c, s.B)
	if err != nil {
		return 0, err
	}
	m := oa.Mask() | ob.Mask()

	a, d := s.A.Vector(), s.B.Vector().Sub(s.A.Vector())
	for axis := 0; axis < 3; axis++ {
		da := component(d, axis)
		if da == 0 {
			continue
		}
		t := (c.Coord(axis) - s.A.Coord(axis)) / da
		if t < 0 || t > 1 {
			continue
		}
		m |= crossing(c, planePoint(a, d, t, axis, c), axis)
	}
	return m, nil
}

// lineOctants returns the octants the line l passes through: those holding
// its two ends at infinity and those around every plane crossing.
func lineOctants(c geom.Point, l geom.Line) Octants {
	var neg, pos [3]sides
	for axis := 0; axis < 3; axis++ {
		switch da := l.Dir.Coord(axis); {
		case da > 0:
			neg[axis], pos[axis] = lowSide, highSide
		case da < 0:
			neg[axis], pos[axis] = highSide, lowSide
		default:
			s := sidesAt(l.P.Coord(axis), c.Coord(axis))
			neg[axis], pos[axis] = s, s
		}
	}
	m := octantsOf(neg[0], neg[1], neg[2]) | octantsOf(pos[0], pos[1], pos[2])

	p, d := l.P.Vector(), l.Dir.Vector()
	for axis := 0; axis < 3; axis++ {
		da := component(d, axis)
		if da == 0 {
			continue
		}
		t := (c.Coord(axis) - l.P.Coord(axis)) / da
		m |= crossing(c, planePoint(p, d, t, axis, c), axis)
	}
	return m
}

// planePoint returns o + t*d with the coordinate of axis pinned to the
// centroid's, removing rounding error on the crossed axis.
func planePoint(o, d r3.Vector, t float64, axis int, c geom.Point) geom.Point {
	return geom.FromVector(o.Add(d.Mul(t))).WithCoord(axis, c.Coord(axis))
}

func component(v r3.Vector, axis int) float64 {
	return geom.FromVector(v).Coord(axis)
}

// octantBox returns the region of octant o around c, widened by
// fcmp.Epsilon so that it covers every point GetOctant assigns to o.
func octantBox(c geom.Point, o Octant) geom.Box {
	inf := math.Inf(1)
	b := geom.Box{Low: geom.Pt(-inf, -inf, -inf), High: geom.Pt(inf, inf, inf)}
	m := o.Mask()

	if m&RightOctants != 0 {
		b.Low.X = c.X - fcmp.Epsilon
	} else {
		b.High.X = c.X + fcmp.Epsilon
	}
	if m&AboveOctants != 0 {
		b.Low.Y = c.Y - fcmp.Epsilon
	} else {
		b.High.Y = c.Y + fcmp.Epsilon
	}
	if m&FrontOctants != 0 {
		b.High.Z = c.Z + fcmp.Epsilon
	} else {
		b.Low.Z = c.Z - fcmp.Epsilon
	}
	return b
}

// intersect returns the common part of a and b. The result may be inverted
// when they are disjoint.
func intersect(a, b geom.Box) geom.Box {
	return geom.Box{
		Low:  geom.Pt(math.Max(a.Low.X, b.Low.X), math.Max(a.Low.Y, b.Low.Y), math.Max(a.Low.Z, b.Low.Z)),
		High: geom.Pt(math.Min(a.High.X, b.High.X), math.Min(a.High.Y, b.High.Y), math.Min(a.High.Z, b.High.Z)),
	}
}
