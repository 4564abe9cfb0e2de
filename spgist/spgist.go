package spgist

import (
	"log/slog"
	"math"
	"slices"

	"github.com/cockroachdb/errors"

	"github.com/hupe1980/geo3d/geom"
	"github.com/hupe1980/geo3d/internal/fcmp"
	"github.com/hupe1980/geo3d/strategy"
)

const indexName = "spgist point3D"

// Centroid selects how PickSplit places the centroid of a new inner node.
type Centroid uint8

const (
	// CentroidMean uses the per-axis mean of the points.
	CentroidMean Centroid = iota
	// CentroidMedian uses the per-axis median of the points.
	CentroidMedian
)

func (c Centroid) String() string {
	if c == CentroidMedian {
		return "median"
	}
	return "mean"
}

// Support holds the octree support callbacks.
type Support struct {
	centroid Centroid
	logger   *slog.Logger
}

// Option configures a Support.
type Option func(*Support)

// WithCentroid sets the centroid strategy of PickSplit. Default is
// CentroidMean.
func WithCentroid(c Centroid) Option {
	return func(s *Support) {
		s.centroid = c
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Support) {
		s.logger = l
	}
}

// New returns the octree support functions.
func New(optFns ...Option) *Support {
	s := &Support{centroid: CentroidMean}
	for _, fn := range optFns {
		fn(s)
	}
	return s
}

// Config describes the node layout produced by the support functions.
type Config struct {
	// PrefixKind is the kind of the value stored in inner nodes.
	PrefixKind geom.Kind
	// NumNodes is the number of children of an inner node.
	NumNodes int
	// Labeled is set when nodes carry labels.
	Labeled bool
	// CanReturnData is set when leaves hold the exact indexed value.
	CanReturnData bool
}

// Config returns the node layout.
func (s *Support) Config() Config {
	return Config{
		PrefixKind:    geom.KindPoint,
		NumNodes:      NumNodes,
		CanReturnData: true,
	}
}

// ChooseIn is the input of Choose.
type ChooseIn struct {
	Centroid geom.Point
	Point    geom.Point
	// AllTheSame is set when the inner node's children are equivalent.
	AllTheSame bool
}

// ChooseOut is the result of Choose.
type ChooseOut struct {
	// Node is the index of the child to descend into.
	Node int
	// Rest is the value to store further down, always the input point.
	Rest geom.Point
}

// Choose returns the child of an inner node a new point belongs to.
func (s *Support) Choose(in ChooseIn) (ChooseOut, error) {
	if in.AllTheSame {
		return ChooseOut{Node: 0, Rest: in.Point}, nil
	}
	o, err := GetOctant(in.Centroid, in.Point)
	if err != nil {
		return ChooseOut{}, err
	}
	return ChooseOut{Node: o.Node(), Rest: in.Point}, nil
}

// PickSplitOut is the result of PickSplit.
type PickSplitOut struct {
	Centroid geom.Point
	// Nodes holds the child index of every input point.
	Nodes []int
	// Leaves holds the values to store in the new leaves, the input points
	// unchanged.
	Leaves []geom.Point
}

// PickSplit computes a centroid for points and assigns each point to the
// octant it falls in.
func (s *Support) PickSplit(points []geom.Point) (PickSplitOut, error) {
	if len(points) == 0 {
		return PickSplitOut{}, ErrNoPoints
	}

	var c geom.Point
	if s.centroid == CentroidMedian {
		c = median(points)
	} else {
		c = mean(points)
	}

	out := PickSplitOut{
		Centroid: c,
		Nodes:    make([]int, len(points)),
		Leaves:   make([]geom.Point, len(points)),
	}
	for i, p := range points {
		o, err := GetOctant(c, p)
		if err != nil {
			return PickSplitOut{}, errors.Wrapf(err, "picksplit entry %d", i)
		}
		out.Nodes[i] = o.Node()
		out.Leaves[i] = p
	}

	if s.logger != nil {
		s.logger.Debug("spgist picksplit", "points", len(points), "centroid", c.String(), "method", s.centroid.String())
	}
	return out, nil
}

func mean(points []geom.Point) geom.Point {
	var c geom.Point
	for _, p := range points {
		c.X += p.X
		c.Y += p.Y
		c.Z += p.Z
	}
	n := float64(len(points))
	return geom.Pt(c.X/n, c.Y/n, c.Z/n)
}

// median takes element n/2 of each axis sorted independently.
func median(points []geom.Point) geom.Point {
	n := len(points)
	xs, ys, zs := make([]float64, n), make([]float64, n), make([]float64, n)
	for i, p := range points {
		xs[i], ys[i], zs[i] = p.X, p.Y, p.Z
	}
	slices.Sort(xs)
	slices.Sort(ys)
	slices.Sort(zs)
	return geom.Pt(xs[n>>1], ys[n>>1], zs[n>>1])
}

// ScanKey is one search condition: an operator and its query argument.
type ScanKey struct {
	Strategy strategy.Number
	Query    geom.Shape
}

// InnerIn is the input of InnerConsistent.
type InnerIn struct {
	Centroid geom.Point
	ScanKeys []ScanKey
	// OrderBys are the points of a nearest-neighbor scan.
	OrderBys []geom.Point
	// Traversal is the region covered by the inner node. Nil means all of
	// space. It is only used when OrderBys is set.
	Traversal *geom.Box
	// AllTheSame is set when the children are equivalent.
	AllTheSame bool
}

// InnerOut is the result of InnerConsistent. Distances and Traversal are
// parallel to Nodes and only set when the input has OrderBys.
type InnerOut struct {
	Nodes []int
	// Distances holds, per node, a lower bound of the distance from each
	// OrderBys point to any point below the node.
	Distances [][]float64
	// Traversal holds the region covered by each node.
	Traversal []geom.Box
}

// InnerConsistent returns the children of an inner node that may hold
// points satisfying every scan key.
func (s *Support) InnerConsistent(in InnerIn) (InnerOut, error) {
	var which Octants
	if in.AllTheSame {
		// Still validate the keys so that a bad operator fails the scan.
		for _, sk := range in.ScanKeys {
			if _, _, err := decode(sk); err != nil {
				return InnerOut{}, err
			}
		}
		which = AllOctants
	} else {
		var err error
		which, err = s.innerMask(in.Centroid, in.ScanKeys)
		if err != nil {
			return InnerOut{}, err
		}
	}

	out := InnerOut{Nodes: which.Nodes()}
	if len(in.OrderBys) == 0 || len(out.Nodes) == 0 {
		return out, nil
	}

	parent := everywhere()
	if in.Traversal != nil {
		parent = *in.Traversal
	}
	out.Distances = make([][]float64, len(out.Nodes))
	out.Traversal = make([]geom.Box, len(out.Nodes))
	for i, n := range out.Nodes {
		region := parent
		if !in.AllTheSame {
			region = intersect(parent, octantBox(in.Centroid, Octant(n+1)))
		}
		out.Traversal[i] = region
		out.Distances[i] = make([]float64, len(in.OrderBys))
		for j, q := range in.OrderBys {
			out.Distances[i][j] = region.DistanceToPoint(q)
		}
	}
	return out, nil
}

func (s *Support) innerMask(c geom.Point, keys []ScanKey) (Octants, error) {
	which := AllOctants
	for _, sk := range keys {
		kind, op, err := decode(sk)
		if err != nil {
			return 0, err
		}
		q := sk.Query.BoundingBox()

		switch op {
		case strategy.Left:
			if fcmp.FPgt(c.X, q.Low.X) {
				which &= LeftOctants
			}
		case strategy.Right:
			if fcmp.FPlt(c.X, q.High.X) {
				which &= RightOctants
			}
		case strategy.Below:
			if fcmp.FPgt(c.Y, q.Low.Y) {
				which &= BelowOctants
			}
		case strategy.Above:
			if fcmp.FPlt(c.Y, q.High.Y) {
				which &= AboveOctants
			}
		case strategy.Front:
			if fcmp.FPgt(c.Z, q.Low.Z) {
				which &= FrontOctants
			}
		case strategy.Back:
			if fcmp.FPlt(c.Z, q.High.Z) {
				which &= BackOctants
			}
		case strategy.Same:
			m, err := boxOctants(c, q)
			if err != nil {
				return 0, err
			}
			which &= m
		case strategy.ContainedBy:
			m, err := containedByOctants(c, kind, sk.Query)
			if err != nil {
				return 0, err
			}
			which &= m
		}

		if which == 0 {
			break
		}
	}
	return which, nil
}

// containedByOctants returns the octants that may hold a point lying in q.
func containedByOctants(c geom.Point, kind geom.Kind, q geom.Shape) (Octants, error) {
	switch kind {
	case geom.KindLseg:
		return lsegOctants(c, q.(geom.Lseg))
	case geom.KindLine:
		return lineOctants(c, q.(geom.Line)), nil
	default:
		// Points, boxes, paths, polygons and spheres through their bounding
		// box.
		return boxOctants(c, q.BoundingBox())
	}
}

// LeafOut is the result of LeafConsistent.
type LeafOut struct {
	Match bool
	// Recheck is always false: leaves store exact points.
	Recheck bool
	// Distances holds the distance from the point to each OrderBys point.
	Distances []float64
}

// LeafConsistent reports whether the stored point p satisfies every scan
// key.
func (s *Support) LeafConsistent(p geom.Point, keys []ScanKey, orderBys []geom.Point) (LeafOut, error) {
	match := true
	for _, sk := range keys {
		_, op, err := decode(sk)
		if err != nil {
			return LeafOut{}, err
		}
		if !match {
			continue
		}
		match = leafTest(p, op, sk.Query)
	}

	out := LeafOut{Match: match}
	if match && len(orderBys) > 0 {
		out.Distances = make([]float64, len(orderBys))
		for i, q := range orderBys {
			out.Distances[i] = p.Distance(q)
		}
	}
	return out, nil
}

func leafTest(p geom.Point, op strategy.Operator, q geom.Shape) bool {
	pb := p.BoundingBox()
	switch op {
	case strategy.Left:
		return geom.Left(pb, q.BoundingBox())
	case strategy.Right:
		return geom.Right(pb, q.BoundingBox())
	case strategy.Below:
		return geom.Below(pb, q.BoundingBox())
	case strategy.Above:
		return geom.Above(pb, q.BoundingBox())
	case strategy.Front:
		return geom.Front(pb, q.BoundingBox())
	case strategy.Back:
		return geom.Back(pb, q.BoundingBox())
	case strategy.Same, strategy.ContainedBy:
		return geom.PointIn(p, q)
	default:
		return false
	}
}

// decode validates a scan key and returns its query kind and operator.
func decode(sk ScanKey) (geom.Kind, strategy.Operator, error) {
	kind, op, err := sk.Strategy.Decode()
	if err != nil {
		return 0, 0, err
	}
	if sk.Query == nil || sk.Query.Kind() != kind {
		return 0, 0, errors.Wrapf(strategy.ErrInvalidStrategy, "strategy %s applied to a different shape kind", sk.Strategy)
	}
	switch op {
	case strategy.Left, strategy.Right, strategy.Below, strategy.Above, strategy.Front, strategy.Back, strategy.ContainedBy:
		return kind, op, nil
	case strategy.Same:
		if kind == geom.KindPoint {
			return kind, op, nil
		}
	}
	return 0, 0, strategy.Unsupported(kind, op, indexName)
}

func everywhere() geom.Box {
	inf := math.Inf(1)
	return geom.Box{Low: geom.Pt(-inf, -inf, -inf), High: geom.Pt(inf, inf, inf)}
}
