package fcmp

import "math"

// Epsilon is the tolerance of the fuzzy comparators.
const Epsilon = 1.0e-06

// Eq reports a == b, treating NaN as equal to NaN.
func Eq(a, b float64) bool {
	if math.IsNaN(a) {
		return math.IsNaN(b)
	}
	return !math.IsNaN(b) && a == b
}

// Ne reports !Eq(a, b).
func Ne(a, b float64) bool { return !Eq(a, b) }

// Lt reports a < b where NaN is greater than every non-NaN value.
func Lt(a, b float64) bool {
	if math.IsNaN(a) {
		return false
	}
	return math.IsNaN(b) || a < b
}

// Le reports a <= b where NaN is greater than every non-NaN value.
func Le(a, b float64) bool {
	if math.IsNaN(b) {
		return true
	}
	return !math.IsNaN(a) && a <= b
}

// Gt reports a > b where NaN is greater than every non-NaN value.
func Gt(a, b float64) bool { return Lt(b, a) }

// Ge reports a >= b where NaN is greater than every non-NaN value.
func Ge(a, b float64) bool { return Le(b, a) }

// Cmp returns -1, 0 or +1 following the total order.
func Cmp(a, b float64) int {
	switch {
	case Lt(a, b):
		return -1
	case Gt(a, b):
		return 1
	default:
		return 0
	}
}

// Min returns the smaller operand under the total order.
func Min(a, b float64) float64 {
	if Lt(a, b) {
		return a
	}
	return b
}

// Max returns the larger operand under the total order, so NaN wins.
func Max(a, b float64) float64 {
	if Gt(a, b) {
		return a
	}
	return b
}

// FPzero reports |a| <= Epsilon.
func FPzero(a float64) bool { return math.Abs(a) <= Epsilon }

// FPeq reports a == b within Epsilon. Equal infinities compare equal.
func FPeq(a, b float64) bool { return a == b || math.Abs(a-b) <= Epsilon }

// FPne reports !FPeq(a, b) for non-NaN operands.
func FPne(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return false
	}
	return !FPeq(a, b)
}

// FPlt reports a < b by more than Epsilon.
func FPlt(a, b float64) bool { return a+Epsilon < b }

// FPle reports a <= b within Epsilon.
func FPle(a, b float64) bool { return a <= b+Epsilon }

// FPgt reports a > b by more than Epsilon.
func FPgt(a, b float64) bool { return a > b+Epsilon }

// FPge reports a >= b within Epsilon.
func FPge(a, b float64) bool { return a+Epsilon >= b }
