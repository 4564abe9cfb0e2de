// Package index provides the contract shared by the in-memory spatial indexes.
//
// Two hosts drive the support callbacks end to end:
//
//   - rtree: a GiST-style R-tree over bounding-box keys (package gist)
//   - octree: an SP-GiST-style point octree (package spgist)
//
// # Index Interface
//
// All index implementations satisfy the core Index interface:
//
//	type Index interface {
//	    Name() string
//	    Insert(ctx context.Context, id uint32, shape geom.Shape) error
//	    Search(ctx context.Context, queries ...Query) (Hits, error)
//	    Nearest(ctx context.Context, q geom.Shape, k int) ([]Neighbor, error)
//	    Len() int
//	    Close() error
//	}
//
// # Results
//
// Search returns Hits: two roaring bitmaps separating exact matches from
// candidates that need a recheck against the stored shape. Lossy operator
// classes (path, polygon, sphere) only ever produce candidates.
//
// Nearest always returns exact distances. Hosts that only know a lower
// bound for an entry push it back into the queue with its exact distance
// before reporting it.
//
// # Subpackages
//
//   - rtree: R-tree with the double-sorting split
//   - octree: point octree with mean or median centroids
package index
