// Package gist implements the support functions of a balanced R-tree over
// 3-D shapes.
//
// Every indexed shape is reduced to a geom.Box key (a point becomes a
// degenerate box, a sphere its enclosing cube). A Support value bundles the
// callbacks an R-tree host needs for one operator class:
//
//   - Compress, Decompress and Fetch convert between shapes and keys.
//   - Union, Penalty and Same drive insertion.
//   - PickSplit divides an overflowing node with the double-sorting split.
//   - Consistent prunes subtrees during a scan and tells the caller when a
//     match must be rechecked against the original value.
//   - Distance orders a nearest-neighbor scan.
//
// All methods are pure and safe for concurrent use.
package gist
