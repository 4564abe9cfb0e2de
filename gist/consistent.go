package gist

import (
	"github.com/cockroachdb/errors"

	"github.com/hupe1980/geo3d/geom"
	"github.com/hupe1980/geo3d/strategy"
)

// rule evaluates one operator against one query kind.
type rule struct {
	// leaf tests an exact key. exact is false when a match must be rechecked
	// against the original value.
	leaf func(key geom.Box, q geom.Shape) (match, exact bool)
	// internal tests the bound of a subtree. It may only reject a subtree
	// when no key below it can satisfy leaf.
	internal func(key geom.Box, q geom.Shape) bool
}

// table maps (query kind, operator) to a rule. A nil entry is an operator
// that does not apply to the query kind.
type table [geom.NumKinds][strategy.NumOperators + 1]*rule

// direction pairs a directional predicate with the predicate whose truth
// rules it out for every box inside a subtree bound.
type direction struct {
	test  func(a, b geom.Box) bool
	prune func(a, b geom.Box) bool
}

var directions = map[strategy.Operator]direction{
	strategy.Left:      {geom.Left, geom.OverRight},
	strategy.OverLeft:  {geom.OverLeft, geom.Right},
	strategy.OverRight: {geom.OverRight, geom.Left},
	strategy.Right:     {geom.Right, geom.OverLeft},
	strategy.Below:     {geom.Below, geom.OverAbove},
	strategy.OverBelow: {geom.OverBelow, geom.Above},
	strategy.Above:     {geom.Above, geom.OverBelow},
	strategy.OverAbove: {geom.OverAbove, geom.Below},
	strategy.Front:     {geom.Front, geom.OverBack},
	strategy.OverFront: {geom.OverFront, geom.Back},
	strategy.Back:      {geom.Back, geom.OverFront},
	strategy.OverBack:  {geom.OverBack, geom.Front},
}

var (
	boxTable   = newTable(false)
	pointTable = newTable(true)
)

// newTable builds the rules for box keys, or for degenerate boxes holding a
// single point when pointKeys is set. Internal rules are shared: both
// operator classes bound their subtrees with boxes.
func newTable(pointKeys bool) *table {
	t := new(table)
	for kind := geom.Kind(0); kind < geom.NumKinds; kind++ {
		for op := strategy.Left; op <= strategy.NumOperators; op++ {
			if !op.Directional() {
				continue
			}
			d := directions[op]
			t[kind][op] = &rule{
				leaf: func(key geom.Box, q geom.Shape) (bool, bool) {
					return d.test(key, q.BoundingBox()), true
				},
				internal: func(key geom.Box, q geom.Shape) bool {
					return !d.prune(key, q.BoundingBox())
				},
			}
		}

		overlap := func(key geom.Box, q geom.Shape) bool {
			ok, _ := geom.BoxOverlaps(key, q)
			return ok
		}
		contains := func(key geom.Box, q geom.Shape) bool {
			return geom.BoxContains(key, q)
		}

		if pointKeys {
			pointIn := func(key geom.Box, q geom.Shape) (bool, bool) {
				return geom.PointIn(key.Low, q), true
			}
			t[kind][strategy.Overlap] = &rule{leaf: pointIn, internal: overlap}
			t[kind][strategy.ContainedBy] = &rule{leaf: pointIn, internal: overlap}
			t[kind][strategy.Contains] = &rule{
				leaf: func(key geom.Box, q geom.Shape) (bool, bool) {
					return geom.PointContains(key.Low, q), true
				},
				internal: contains,
			}
		} else {
			t[kind][strategy.Overlap] = &rule{leaf: geom.BoxOverlaps, internal: overlap}
			t[kind][strategy.ContainedBy] = &rule{leaf: geom.BoxContainedBy, internal: overlap}
			t[kind][strategy.Contains] = &rule{
				leaf: func(key geom.Box, q geom.Shape) (bool, bool) {
					return geom.BoxContains(key, q), true
				},
				internal: contains,
			}
		}

		if kind == geom.KindPoint || kind == geom.KindBox {
			t[kind][strategy.Same] = &rule{
				leaf: func(key geom.Box, q geom.Shape) (bool, bool) {
					return geom.Same(key, q.BoundingBox()), true
				},
				internal: contains,
			}
		}
	}
	return t
}

// lookup decodes n and returns the rule for query.
func (s *Support) lookup(query geom.Shape, n strategy.Number) (*rule, error) {
	kind, op, err := n.Decode()
	if err != nil {
		return nil, err
	}
	if query == nil || query.Kind() != kind {
		return nil, errors.Wrapf(ErrWrongShape, "strategy %s applied to %s", n, kindOf(query))
	}

	t := boxTable
	if s.opclass == OpClassPoint {
		t = pointTable
	}
	r := t[kind][op]
	if r == nil {
		return nil, strategy.Unsupported(kind, op, s.opclass.String())
	}
	return r, nil
}

// Consistent reports whether key may satisfy the operator encoded in n
// against query. For an internal key (isLeaf false) a false result means no
// entry below key can match. recheck is set when a leaf match was decided on
// bounding boxes and must be confirmed against the original value.
//
// Operator classes that store only bounding boxes (path, polygon, sphere)
// apply the subtree test at every level and always ask for a recheck.
func (s *Support) Consistent(key geom.Box, query geom.Shape, n strategy.Number, isLeaf bool) (match, recheck bool, err error) {
	r, err := s.lookup(query, n)
	if err != nil {
		return false, false, err
	}

	if s.opclass.Lossy() {
		return r.internal(key, query), true, nil
	}
	if !isLeaf {
		return r.internal(key, query), false, nil
	}

	match, exact := r.leaf(key, query)
	return match, !exact, nil
}
