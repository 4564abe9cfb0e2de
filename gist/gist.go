package gist

import (
	"fmt"
	"log/slog"

	"github.com/cockroachdb/errors"

	"github.com/hupe1980/geo3d/geom"
)

// OpClass selects which shape kind an index stores.
type OpClass uint8

const (
	OpClassBox OpClass = iota
	OpClassPoint
	OpClassPath
	OpClassPolygon
	OpClassSphere
)

// Kind returns the shape kind indexed by c.
func (c OpClass) Kind() geom.Kind {
	switch c {
	case OpClassPoint:
		return geom.KindPoint
	case OpClassPath:
		return geom.KindPath
	case OpClassPolygon:
		return geom.KindPolygon
	case OpClassSphere:
		return geom.KindSphere
	default:
		return geom.KindBox
	}
}

// Lossy reports whether keys of c are only bounding boxes of the indexed
// values, so every match needs a recheck.
func (c OpClass) Lossy() bool {
	switch c {
	case OpClassPath, OpClassPolygon, OpClassSphere:
		return true
	}
	return false
}

func (c OpClass) String() string {
	if c > OpClassSphere {
		return fmt.Sprintf("OpClass(%d)", uint8(c))
	}
	return "gist " + c.Kind().String()
}

// Support holds the support callbacks of one operator class.
type Support struct {
	opclass OpClass
	logger  *slog.Logger
}

// Option configures a Support.
type Option func(*Support)

// WithLogger sets the logger used to report split decisions.
func WithLogger(l *slog.Logger) Option {
	return func(s *Support) {
		s.logger = l
	}
}

// New returns the support functions for opclass.
func New(opclass OpClass, optFns ...Option) *Support {
	s := &Support{opclass: opclass}
	for _, fn := range optFns {
		fn(s)
	}
	return s
}

// OpClass returns the operator class of s.
func (s *Support) OpClass() OpClass { return s.opclass }

// Compress reduces an indexed value to its key.
func (s *Support) Compress(shape geom.Shape) (geom.Box, error) {
	if shape == nil || shape.Kind() != s.opclass.Kind() {
		return geom.Box{}, errors.Wrapf(ErrWrongShape, "%s cannot store %s", s.opclass, kindOf(shape))
	}
	return shape.BoundingBox(), nil
}

// Decompress returns key unchanged.
func (s *Support) Decompress(key geom.Box) geom.Box { return key }

// Fetch reconstructs the indexed value from its key. Only the box and point
// operator classes store exact values.
func (s *Support) Fetch(key geom.Box) (geom.Shape, error) {
	switch s.opclass {
	case OpClassBox:
		return key, nil
	case OpClassPoint:
		return key.Low, nil
	default:
		return nil, errors.Wrapf(ErrFetchUnsupported, "%s", s.opclass)
	}
}

// Union returns the box covering all keys.
func (s *Support) Union(keys []geom.Box) geom.Box { return geom.UnionAll(keys) }

// Penalty returns the volume growth of orig when extended to cover add.
func (s *Support) Penalty(orig, add geom.Box) float64 { return geom.Penalty(orig, add) }

// Same reports exact equality of two keys. NaN bounds compare equal.
func (s *Support) Same(a, b geom.Box) bool { return geom.SameKey(a, b) }

func kindOf(shape geom.Shape) string {
	if shape == nil {
		return "<nil>"
	}
	return shape.Kind().String()
}
