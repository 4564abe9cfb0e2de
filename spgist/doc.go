// Package spgist implements the support functions of a point octree.
//
// Every inner node stores a centroid and has eight children, one per
// octant. Octants are numbered 1 to 8 and map to node indices 0 to 7:
//
//	octant  x       y       z
//	1       right   above   front
//	2       right   below   front
//	3       left    below   front
//	4       left    above   front
//	5       right   above   back
//	6       right   below   back
//	7       left    below   back
//	8       left    above   back
//
// where right means x >= centroid.x, above y >= centroid.y and front
// z <= centroid.z. A point lying on a dividing plane goes to the
// lowest-numbered adjacent octant.
//
// InnerConsistent turns scan keys into a set of octants (an Octants bit
// mask) and LeafConsistent evaluates the exact operator on a stored point.
package spgist
