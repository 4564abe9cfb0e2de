package strategy

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/hupe1980/geo3d/geom"
)

// ErrInvalidStrategy reports a strategy number the support functions cannot
// evaluate. It points at a misconfigured operator class, not at bad data.
var ErrInvalidStrategy = errors.New("invalid strategy number")

// UnsupportedOperatorError is returned when an operator is well formed but
// not defined for a query kind under a given index.
type UnsupportedOperatorError struct {
	Kind     geom.Kind
	Operator Operator
	// Index names the rejecting index, e.g. "gist box3D" or "spgist point3D".
	Index string
}

func (e *UnsupportedOperatorError) Error() string {
	return fmt.Sprintf("operator %s on %s is not supported by %s", e.Operator, e.Kind, e.Index)
}

// Unsupported returns an *UnsupportedOperatorError marked with
// ErrInvalidStrategy.
func Unsupported(kind geom.Kind, op Operator, index string) error {
	return errors.Mark(&UnsupportedOperatorError{Kind: kind, Operator: op, Index: index}, ErrInvalidStrategy)
}
