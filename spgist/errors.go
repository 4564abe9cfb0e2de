package spgist

import "github.com/cockroachdb/errors"

var (
	// ErrImpossibleOctant marks a point that none of the octant tests accept.
	// Only points with NaN coordinates get there; the error is also an
	// assertion failure (see errors.IsAssertionFailure).
	ErrImpossibleOctant = errors.New("spgist: point matches no octant")

	// ErrNoPoints is returned by PickSplit for an empty input.
	ErrNoPoints = errors.New("spgist: picksplit needs at least one point")
)
