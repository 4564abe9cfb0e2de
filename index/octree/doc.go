// Package octree implements an in-memory point octree driven by the
// SP-GiST support callbacks of package spgist.
//
// Points collect in leaf pages. A page that outgrows LeafCapacity is
// replaced by an inner node whose centroid comes from PickSplit, with one
// child page per occupied octant. When every point lands in the same
// octant (duplicates) the inner node is marked all-the-same and the points
// are spread over its children.
//
// Searches ask InnerConsistent which children to visit and LeafConsistent
// which points match. Nearest-neighbor scans carry the region of each
// child (its traversal box) to order the queue by lower bounds.
package octree
