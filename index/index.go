// Package index provides interfaces and types for spatial indexes.
package index

import (
	"context"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/geo3d/geom"
	"github.com/hupe1980/geo3d/strategy"
)

var (
	// ErrClosed is returned by operations on a closed index.
	ErrClosed = errors.New("index is closed")

	// ErrInvalidK is returned when a nearest-neighbor scan asks for k < 1.
	ErrInvalidK = errors.New("k must be positive")

	// ErrDuplicateID is returned when an id is inserted twice.
	ErrDuplicateID = errors.New("duplicate id")
)

// ErrShapeMismatch is a named error type for shapes an index cannot store.
type ErrShapeMismatch struct {
	Index    string    // Index name
	Expected geom.Kind // Kind the index stores
	Actual   geom.Kind // Kind of the rejected shape
}

// Error returns the error message for a shape mismatch.
func (e *ErrShapeMismatch) Error() string {
	return fmt.Sprintf("%s stores %s values, got %s", e.Index, e.Expected, e.Actual)
}

// Query is one search condition: a strategy number and its argument.
type Query struct {
	Strategy strategy.Number
	Shape    geom.Shape
}

// NewQuery builds the query applying op with the given argument. The
// strategy group follows the argument's kind.
func NewQuery(op strategy.Operator, shape geom.Shape) Query {
	return Query{Strategy: strategy.Make(shape.Kind(), op), Shape: shape}
}

// Hits is the result of a search. Matches holds ids that satisfy every
// query exactly. Recheck holds ids whose keys only approximate the stored
// value; the caller must test them against the original shapes.
type Hits struct {
	Matches *roaring.Bitmap
	Recheck *roaring.Bitmap
}

// NewHits returns empty hits.
func NewHits() Hits {
	return Hits{Matches: roaring.New(), Recheck: roaring.New()}
}

// Add records id as a match, or as a candidate when recheck is set.
func (h Hits) Add(id uint32, recheck bool) {
	if recheck {
		h.Recheck.Add(id)
		return
	}
	h.Matches.Add(id)
}

// All returns the union of matches and recheck candidates.
func (h Hits) All() *roaring.Bitmap {
	return roaring.Or(h.Matches, h.Recheck)
}

// Len returns the number of ids in both sets.
func (h Hits) Len() int {
	return int(h.Matches.GetCardinality() + h.Recheck.GetCardinality())
}

// Item pairs a shape with its id for bulk loading.
type Item struct {
	ID    uint32
	Shape geom.Shape
}

// Neighbor is one result of a nearest-neighbor scan.
type Neighbor struct {
	ID       uint32
	Distance float64
}

// Index is a spatial index over shapes identified by uint32 ids.
type Index interface {
	// Name returns the name of the index.
	Name() string

	// Insert stores shape under id.
	Insert(ctx context.Context, id uint32, shape geom.Shape) error

	// Search returns the ids satisfying every query.
	Search(ctx context.Context, queries ...Query) (Hits, error)

	// Nearest returns up to k ids ordered by exact distance to q.
	Nearest(ctx context.Context, q geom.Shape, k int) ([]Neighbor, error)

	// Len returns the number of stored shapes.
	Len() int

	// Close releases the index. Further calls fail with ErrClosed.
	Close() error
}

// SearchBatch runs one Search per query set concurrently, with at most
// limit scans in flight (limit <= 0 means no limit). Results are returned
// in input order; the first error cancels the remaining scans.
func SearchBatch(ctx context.Context, idx Index, batches [][]Query, limit int) ([]Hits, error) {
	results := make([]Hits, len(batches))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, queries := range batches {
		g.Go(func() error {
			hits, err := idx.Search(ctx, queries...)
			if err != nil {
				return errors.Wrapf(err, "batch %d", i)
			}
			results[i] = hits
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
