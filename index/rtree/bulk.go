package rtree

import (
	"context"
	"math"
	"slices"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/hupe1980/geo3d/index"
	"github.com/hupe1980/geo3d/internal/fcmp"
)

// Build loads items into the tree. An empty tree is packed bottom-up with
// sort-tile-recursive tiling; otherwise the items are inserted one by one.
// Items are validated before any of them is stored.
func (t *RTree) Build(ctx context.Context, items []index.Item) (err error) {
	start := time.Now()
	defer func() { t.metrics.RecordInsert(time.Since(start), err) }()

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return index.ErrClosed
	}

	entries := make([]entry, len(items))
	seen := make(map[uint32]struct{}, len(items))
	for i, it := range items {
		if _, ok := t.shapes[it.ID]; ok {
			return errors.Wrapf(index.ErrDuplicateID, "id %d", it.ID)
		}
		if _, ok := seen[it.ID]; ok {
			return errors.Wrapf(index.ErrDuplicateID, "id %d", it.ID)
		}
		seen[it.ID] = struct{}{}

		key, err := t.support.Compress(it.Shape)
		if err != nil {
			return errors.Wrapf(err, "item %d", i)
		}
		entries[i] = entry{key: key, id: it.ID}
	}

	if len(t.shapes) > 0 {
		for _, it := range items {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := t.insert(it.ID, it.Shape); err != nil {
				return err
			}
		}
		return nil
	}

	if len(entries) == 0 {
		return nil
	}

	nodes := t.pack(entries, true)
	height := 1
	for len(nodes) > 1 {
		if err := ctx.Err(); err != nil {
			return err
		}
		parents := make([]entry, len(nodes))
		for i, n := range nodes {
			parents[i] = entry{key: t.nodeKey(n), child: n}
		}
		nodes = t.pack(parents, false)
		height++
	}

	t.root = nodes[0]
	t.height = height
	for _, it := range items {
		t.shapes[it.ID] = it.Shape
	}

	if t.opts.Logger != nil {
		t.opts.Logger.Debug("rtree bulk build", "entries", len(items), "height", height)
	}
	return nil
}

// pack tiles entries into nodes of at most MaxEntries: slabs along x,
// strips along y within a slab, runs along z within a strip.
func (t *RTree) pack(entries []entry, leaf bool) []*node {
	m := t.opts.MaxEntries
	pages := (len(entries) + m - 1) / m
	tiles := int(math.Ceil(math.Cbrt(float64(pages))))

	var nodes []*node
	slabSize := tiles * tiles * m
	sortByCenter(entries, 0)
	for _, slab := range chunks(entries, slabSize) {
		sortByCenter(slab, 1)
		for _, strip := range chunks(slab, tiles*m) {
			sortByCenter(strip, 2)
			for _, run := range chunks(strip, m) {
				nodes = append(nodes, &node{leaf: leaf, entries: slices.Clone(run)})
			}
		}
	}
	return nodes
}

func sortByCenter(entries []entry, axis int) {
	slices.SortStableFunc(entries, func(a, b entry) int {
		return fcmp.Cmp(a.key.Center().Coord(axis), b.key.Center().Coord(axis))
	})
}

func chunks(entries []entry, size int) [][]entry {
	var out [][]entry
	for len(entries) > 0 {
		n := min(size, len(entries))
		out = append(out, entries[:n])
		entries = entries[n:]
	}
	return out
}

