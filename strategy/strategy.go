package strategy

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/hupe1980/geo3d/geom"
)

// GroupOffset separates the operator ranges of two query subtypes.
const GroupOffset = 20

// Operator is a relational operator within a subtype group.
type Operator uint8

const (
	Left Operator = iota + 1
	OverLeft
	Overlap
	OverRight
	Right
	Same
	Contains
	ContainedBy
	OverBelow
	Below
	Above
	OverAbove
	OverFront
	Front
	Back
	OverBack
	// Distance is the ordering operator used for nearest-neighbor scans.
	Distance
)

// NumOperators is the highest valid Operator.
const NumOperators = Distance

var operatorNames = [...]string{
	Left:        "<<",
	OverLeft:    "&<",
	Overlap:     "&&",
	OverRight:   "&>",
	Right:       ">>",
	Same:        "~=",
	Contains:    "@>",
	ContainedBy: "<@",
	OverBelow:   "&<|",
	Below:       "<<|",
	Above:       "|>>",
	OverAbove:   "|&>",
	OverFront:   "&</",
	Front:       "<</",
	Back:        "/>>",
	OverBack:    "/&>",
	Distance:    "<->",
}

// Valid reports whether o is a known operator.
func (o Operator) Valid() bool { return o >= Left && o <= NumOperators }

// Directional reports whether o is one of the twelve left/right,
// below/above or front/back operators.
func (o Operator) Directional() bool {
	switch o {
	case Left, OverLeft, OverRight, Right,
		OverBelow, Below, Above, OverAbove,
		OverFront, Front, Back, OverBack:
		return true
	}
	return false
}

func (o Operator) String() string {
	if !o.Valid() {
		return fmt.Sprintf("Operator(%d)", uint8(o))
	}
	return operatorNames[o]
}

// ParseOperator returns the operator spelled s, e.g. "&&" or "<<|".
func ParseOperator(s string) (Operator, error) {
	for op := Left; op <= NumOperators; op++ {
		if operatorNames[op] == s {
			return op, nil
		}
	}
	return 0, errors.Wrapf(ErrInvalidStrategy, "operator %q", s)
}

// Number is an encoded strategy number.
type Number int

// Make encodes the operator op applied to a query of the given kind.
func Make(kind geom.Kind, op Operator) Number {
	return Number(int(kind)*GroupOffset + int(op))
}

// Decode splits n into the query kind and the operator. Numbers that do not
// name a known pair fail with ErrInvalidStrategy.
func (n Number) Decode() (geom.Kind, Operator, error) {
	if n < 0 {
		return 0, 0, errors.Wrapf(ErrInvalidStrategy, "strategy %d", int(n))
	}
	group, op := int(n)/GroupOffset, Operator(int(n)%GroupOffset)
	if group >= geom.NumKinds || !op.Valid() {
		return 0, 0, errors.Wrapf(ErrInvalidStrategy, "strategy %d", int(n))
	}
	return geom.Kind(group), op, nil
}

func (n Number) String() string {
	kind, op, err := n.Decode()
	if err != nil {
		return fmt.Sprintf("Number(%d)", int(n))
	}
	return fmt.Sprintf("%s %s", op, kind)
}
