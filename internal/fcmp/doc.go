// Package fcmp provides the float64 comparison primitives used by the index
// support code.
//
// Two families are provided:
//
//   - Total order (Eq, Lt, Le, Gt, Ge, Cmp, Min, Max): NaN compares equal to
//     NaN and greater than every other value, including +Inf. Bounding-box
//     algebra and the split sorts use these so that degenerate keys still
//     order deterministically.
//   - Fuzzy (FPeq, FPlt, ...): comparisons within Epsilon, used by the
//     geometric predicates. Any comparison involving NaN is false.
package fcmp
