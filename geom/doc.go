// Package geom defines the 3-D spatial types indexed by geo3d and the
// geometric primitives the index support functions are built on.
//
// # Types
//
//   - Point: (x, y, z) triple of float64.
//   - Box: axis-aligned box with Low/High corners; the index key type.
//   - Lseg: line segment between two points.
//   - Line: infinite line given by a point and a direction.
//   - Path: open or closed vertex sequence with a precomputed bounding box.
//   - Polygon: planar vertex ring with a precomputed bounding box.
//   - Sphere: center and radius.
//
// Every type implements Shape, which carries a Kind tag and a bounding box.
//
// # Direction vocabulary
//
// left/right run along x, below/above along y and front/back along z, where
// "front" is the side with the smaller coordinate. Predicates are evaluated
// on bounding boxes with the fuzzy comparators of internal/fcmp:
//
//	Left(a, b)      a.High.X <  b.Low.X
//	OverLeft(a, b)  a.High.X <= b.High.X
//	Right(a, b)     a.Low.X  >  b.High.X
//	OverRight(a, b) a.Low.X  >= b.Low.X
//
// Size, Union and Penalty use the NaN-aware total order instead, so malformed
// keys never produce NaN sizes.
package geom
