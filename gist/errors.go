package gist

import "github.com/cockroachdb/errors"

var (
	// ErrTooFewEntries is returned by PickSplit when fewer than two keys are given.
	ErrTooFewEntries = errors.New("gist: picksplit needs at least two entries")

	// ErrFetchUnsupported is returned by Fetch for operator classes whose keys
	// are only bounding boxes of the indexed values.
	ErrFetchUnsupported = errors.New("gist: fetch is not supported by this operator class")

	// ErrWrongShape is returned when a shape does not match the operator class
	// or the kind encoded in the strategy number.
	ErrWrongShape = errors.New("gist: shape kind does not match")
)
