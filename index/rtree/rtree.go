package rtree

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/hupe1980/geo3d/geom"
	"github.com/hupe1980/geo3d/gist"
	"github.com/hupe1980/geo3d/index"
	"github.com/hupe1980/geo3d/internal/fcmp"
	"github.com/hupe1980/geo3d/internal/queue"
	"github.com/hupe1980/geo3d/strategy"
)

// Compile-time check to ensure RTree satisfies the Index interface.
var _ index.Index = (*RTree)(nil)

// ErrInvalidMaxEntries is returned when the node capacity is below MinMaxEntries.
var ErrInvalidMaxEntries = errors.Newf("max entries must be at least %d", MinMaxEntries)

// entry is a key with either a child node or a stored id.
type entry struct {
	key   geom.Box
	child *node
	id    uint32
}

type node struct {
	leaf    bool
	entries []entry
}

// RTree is an in-memory R-tree over the keys of one operator class.
// It is safe for concurrent use; searches share a read lock.
type RTree struct {
	mu      sync.RWMutex
	support *gist.Support
	opts    Options
	metrics index.MetricsCollector

	root   *node
	height int
	shapes map[uint32]geom.Shape
	closed bool
}

// New creates a new R-tree.
func New(optFns ...Option) (*RTree, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.MaxEntries < MinMaxEntries {
		if opts.Logger != nil {
			opts.Logger.Error("invalid rtree configuration", "max_entries", opts.MaxEntries)
		}
		return nil, errors.Wrapf(ErrInvalidMaxEntries, "got %d", opts.MaxEntries)
	}

	var metrics index.MetricsCollector = index.NoopMetricsCollector{}
	if opts.Metrics != nil {
		metrics = opts.Metrics
	}

	return &RTree{
		support: gist.New(opts.OpClass, gist.WithLogger(opts.Logger)),
		opts:    opts,
		metrics: metrics,
		root:    &node{leaf: true},
		height:  1,
		shapes:  make(map[uint32]geom.Shape),
	}, nil
}

// Name returns the name of the index.
func (*RTree) Name() string { return "RTree" }

// OpClass returns the operator class of the keys.
func (t *RTree) OpClass() gist.OpClass { return t.opts.OpClass }

// Len returns the number of stored shapes.
func (t *RTree) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.shapes)
}

// Height returns the number of levels, counting the leaf level.
func (t *RTree) Height() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.height
}

// Shape returns the shape stored under id.
func (t *RTree) Shape(id uint32) (geom.Shape, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s, ok := t.shapes[id]
	return s, ok
}

// Close releases the tree.
func (t *RTree) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return index.ErrClosed
	}
	t.closed = true
	t.root = nil
	t.shapes = nil
	return nil
}

// Insert stores shape under id.
func (t *RTree) Insert(ctx context.Context, id uint32, shape geom.Shape) (err error) {
	start := time.Now()
	defer func() { t.metrics.RecordInsert(time.Since(start), err) }()

	if err := ctx.Err(); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return index.ErrClosed
	}
	return t.insert(id, shape)
}

func (t *RTree) insert(id uint32, shape geom.Shape) error {
	if _, ok := t.shapes[id]; ok {
		return errors.Wrapf(index.ErrDuplicateID, "id %d", id)
	}

	key, err := t.support.Compress(shape)
	if err != nil {
		return err
	}

	sibling, err := t.insertAt(t.root, entry{key: key, id: id})
	if err != nil {
		return err
	}
	if sibling != nil {
		t.root = &node{entries: []entry{
			{key: t.nodeKey(t.root), child: t.root},
			{key: t.nodeKey(sibling), child: sibling},
		}}
		t.height++
	}

	t.shapes[id] = shape
	return nil
}

// insertAt adds e below n and returns the new sibling of n when n split.
func (t *RTree) insertAt(n *node, e entry) (*node, error) {
	if n.leaf {
		n.entries = append(n.entries, e)
	} else {
		i := t.choose(n, e.key)
		child := n.entries[i].child

		sibling, err := t.insertAt(child, e)
		if err != nil {
			return nil, err
		}

		if sibling != nil {
			n.entries[i].key = t.nodeKey(child)
			n.entries = append(n.entries, entry{key: t.nodeKey(sibling), child: sibling})
		} else {
			n.entries[i].key = geom.Union(n.entries[i].key, e.key)
		}
	}

	if len(n.entries) <= t.opts.MaxEntries {
		return nil, nil
	}
	return t.split(n)
}

// choose returns the entry of n whose key grows least when extended by key.
// Ties go to the smaller entry.
func (t *RTree) choose(n *node, key geom.Box) int {
	best := 0
	bestPenalty := math.Inf(1)
	bestSize := math.Inf(1)
	for i, e := range n.entries {
		p := t.support.Penalty(e.key, key)
		size := geom.Size(e.key)
		if fcmp.Lt(p, bestPenalty) || (fcmp.Eq(p, bestPenalty) && fcmp.Lt(size, bestSize)) || i == 0 {
			best, bestPenalty, bestSize = i, p, size
		}
	}
	return best
}

// split moves part of the entries of n into a new sibling.
func (t *RTree) split(n *node) (*node, error) {
	keys := keysOf(n)

	v, err := t.support.PickSplit(keys)
	if err != nil {
		return nil, err
	}
	if len(v.Left) == 0 || len(v.Right) == 0 {
		return nil, errors.AssertionFailedf("split of %d entries left a side empty", len(keys))
	}

	left := make([]entry, 0, len(v.Left))
	for _, i := range v.Left {
		left = append(left, n.entries[i])
	}
	right := make([]entry, 0, len(v.Right))
	for _, i := range v.Right {
		right = append(right, n.entries[i])
	}

	n.entries = left
	t.metrics.RecordSplit(len(keys), v.Fallback)
	if t.opts.Logger != nil {
		t.opts.Logger.Debug("rtree node split",
			"leaf", n.leaf, "entries", len(keys), "left", len(left), "right", len(right), "axis", v.Axis)
	}

	return &node{leaf: n.leaf, entries: right}, nil
}

func (t *RTree) nodeKey(n *node) geom.Box {
	return t.support.Union(keysOf(n))
}

func keysOf(n *node) []geom.Box {
	keys := make([]geom.Box, len(n.entries))
	for i, e := range n.entries {
		keys[i] = e.key
	}
	return keys
}

// validate runs every query once so that a bad strategy fails even on an
// empty tree.
func (t *RTree) validate(queries []index.Query) error {
	for _, q := range queries {
		if _, _, err := t.support.Consistent(geom.Box{}, q.Shape, q.Strategy, true); err != nil {
			return err
		}
	}
	return nil
}

// Search returns the ids whose keys satisfy every query. Without queries
// every id matches.
func (t *RTree) Search(ctx context.Context, queries ...index.Query) (hits index.Hits, err error) {
	start := time.Now()
	defer func() { t.metrics.RecordSearch(hits.Len(), time.Since(start), err) }()

	hits = index.NewHits()

	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.closed {
		return hits, index.ErrClosed
	}
	if err := t.validate(queries); err != nil {
		if t.opts.Logger != nil {
			t.opts.Logger.Error("rtree search rejected", "error", err)
		}
		return hits, err
	}

	stack := []*node{t.root}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return index.NewHits(), err
		}

		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, e := range n.entries {
			match, recheck, err := t.consistent(e.key, queries, n.leaf)
			if err != nil {
				return index.NewHits(), err
			}
			if !match {
				continue
			}
			if n.leaf {
				hits.Add(e.id, recheck)
			} else {
				stack = append(stack, e.child)
			}
		}
	}

	return hits, nil
}

func (t *RTree) consistent(key geom.Box, queries []index.Query, isLeaf bool) (match, recheck bool, err error) {
	for _, q := range queries {
		m, r, err := t.support.Consistent(key, q.Shape, q.Strategy, isLeaf)
		if err != nil || !m {
			return false, false, err
		}
		recheck = recheck || r
	}
	return true, recheck, nil
}

// knnItem is a node or a leaf entry waiting in the scan queue.
type knnItem struct {
	node    *node
	id      uint32
	recheck bool
}

// Nearest returns up to k ids ordered by exact distance to q, which may be
// any shape.
func (t *RTree) Nearest(ctx context.Context, q geom.Shape, k int) (res []index.Neighbor, err error) {
	start := time.Now()
	defer func() { t.metrics.RecordNearest(k, time.Since(start), err) }()

	if k < 1 {
		return nil, errors.Wrapf(index.ErrInvalidK, "got %d", k)
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.closed {
		return nil, index.ErrClosed
	}

	if q == nil {
		return nil, errors.Wrap(gist.ErrWrongShape, "nil nearest query")
	}
	n := strategy.Make(q.Kind(), strategy.Distance)
	if _, _, err := t.support.Distance(geom.Box{}, q, n, true); err != nil {
		return nil, err
	}

	pq := queue.NewMin[knnItem](2 * t.opts.MaxEntries)
	pq.PushItem(queue.Item[knnItem]{Value: knnItem{node: t.root}})

	res = make([]index.Neighbor, 0, k)
	for len(res) < k {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		top, ok := pq.PopItem()
		if !ok {
			break
		}
		it := top.Value

		if it.node == nil {
			if it.recheck {
				// The key only bounds the shape; queue it again at its
				// exact distance.
				d := geom.Distance(q, t.shapes[it.id])
				pq.PushItem(queue.Item[knnItem]{Value: knnItem{id: it.id}, Distance: orderable(d)})
				continue
			}
			res = append(res, index.Neighbor{ID: it.id, Distance: top.Distance})
			continue
		}

		for _, e := range it.node.entries {
			d, recheck, err := t.support.Distance(e.key, q, n, it.node.leaf)
			if err != nil {
				return nil, err
			}
			item := knnItem{node: e.child, id: e.id, recheck: recheck && it.node.leaf}
			pq.PushItem(queue.Item[knnItem]{Value: item, Distance: orderable(d)})
		}
	}

	return res, nil
}

// orderable maps NaN distances to +Inf so they sort last.
func orderable(d float64) float64 {
	if math.IsNaN(d) {
		return math.Inf(1)
	}
	return d
}
