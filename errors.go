package geo3d

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/hupe1980/geo3d/geom"
	"github.com/hupe1980/geo3d/gist"
	"github.com/hupe1980/geo3d/index"
	"github.com/hupe1980/geo3d/index/octree"
	"github.com/hupe1980/geo3d/index/rtree"
	"github.com/hupe1980/geo3d/spgist"
	"github.com/hupe1980/geo3d/strategy"
)

var (
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = index.ErrInvalidK

	// ErrClosed is returned by operations on a closed index.
	ErrClosed = index.ErrClosed

	// ErrDuplicateID is returned when an id is inserted twice.
	ErrDuplicateID = index.ErrDuplicateID

	// ErrInvalidStrategy is returned for strategy numbers outside the
	// operator table and for operators an index does not support.
	ErrInvalidStrategy = strategy.ErrInvalidStrategy

	// ErrImpossibleOctant is returned for points that fit no octant.
	ErrImpossibleOctant = spgist.ErrImpossibleOctant

	// ErrWrongShape is returned when a shape has a kind the index cannot
	// store or compare.
	ErrWrongShape = errors.New("wrong shape kind")

	// ErrInvalidConfig is returned for rejected index options.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ErrShapeMismatch indicates a shape of the wrong kind for the index.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrShapeMismatch struct {
	Expected geom.Kind
	Actual   geom.Kind
	cause    error
}

func (e *ErrShapeMismatch) Error() string {
	return fmt.Sprintf("shape mismatch: expected %s, got %s", e.Expected, e.Actual)
}

func (e *ErrShapeMismatch) Unwrap() error { return e.cause }

// Is reports ErrWrongShape as a match.
func (e *ErrShapeMismatch) Is(target error) bool { return target == ErrWrongShape }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Shape normalization.
	var sm *index.ErrShapeMismatch
	if errors.As(err, &sm) {
		return &ErrShapeMismatch{Expected: sm.Expected, Actual: sm.Actual, cause: err}
	}
	if errors.Is(err, gist.ErrWrongShape) {
		return errors.Mark(err, ErrWrongShape)
	}

	// Configuration.
	for _, target := range []error{
		rtree.ErrInvalidMaxEntries,
		octree.ErrInvalidLeafCapacity,
		octree.ErrInvalidMaxDepth,
	} {
		if errors.Is(err, target) {
			return errors.Mark(err, ErrInvalidConfig)
		}
	}

	return err
}
