// Package rtree implements an in-memory R-tree driven by the GiST support
// callbacks of package gist.
//
// Every node holds up to MaxEntries keys. Inserts descend along the entry
// with the least penalty and overflowing nodes are divided with the
// double-sorting split; splits propagate up to the root. Searches prune
// with the internal consistency rules and classify leaf entries as exact
// matches or recheck candidates. Nearest-neighbor scans order nodes by the
// distance callback and re-queue lossy entries with their exact distance.
//
// Build packs an empty tree bottom-up with sort-tile-recursive tiling,
// which yields fuller nodes than repeated inserts.
package rtree
