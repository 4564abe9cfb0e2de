package gist

import (
	"github.com/cockroachdb/errors"

	"github.com/hupe1980/geo3d/geom"
	"github.com/hupe1980/geo3d/strategy"
)

// Distance returns the distance between key and query for the ordering
// operator encoded in n. Every query kind can order a scan; the query must
// match the strategy group.
//
// Leaf keys of the point opclass give the exact point-to-shape distance and
// other keys the box-to-shape distance, a lower bound for everything below an
// internal key. Opclasses that store bounding boxes always set recheck.
func (s *Support) Distance(key geom.Box, query geom.Shape, n strategy.Number, isLeaf bool) (dist float64, recheck bool, err error) {
	kind, op, err := n.Decode()
	if err != nil {
		return 0, false, err
	}
	if op != strategy.Distance {
		return 0, false, strategy.Unsupported(kind, op, s.opclass.String()+" ordering")
	}
	if query == nil || query.Kind() != kind {
		return 0, false, errors.Wrapf(ErrWrongShape, "%s distance to %s", kind, kindOf(query))
	}

	switch {
	case s.opclass == OpClassPoint && isLeaf:
		return geom.PointDistance(key.Low, query), false, nil
	case s.opclass.Lossy():
		return geom.Distance(key, query), true, nil
	default:
		return geom.Distance(key, query), false, nil
	}
}
