package octree

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/hupe1980/geo3d/geom"
	"github.com/hupe1980/geo3d/index"
	"github.com/hupe1980/geo3d/internal/queue"
	"github.com/hupe1980/geo3d/spgist"
)

// Compile-time check to ensure Octree satisfies the Index interface.
var _ index.Index = (*Octree)(nil)

var (
	// ErrInvalidLeafCapacity is returned for a leaf capacity below 2.
	ErrInvalidLeafCapacity = errors.New("leaf capacity must be at least 2")

	// ErrInvalidMaxDepth is returned for a max depth below 1.
	ErrInvalidMaxDepth = errors.New("max depth must be at least 1")
)

type leafEntry struct {
	point geom.Point
	id    uint32
}

// node is a leaf page or an inner node with eight child slots.
type node struct {
	inner      bool
	centroid   geom.Point
	allTheSame bool
	children   [spgist.NumNodes]*node
	entries    []leafEntry
}

// Octree is an in-memory point octree.
// It is safe for concurrent use; searches share a read lock.
type Octree struct {
	mu      sync.RWMutex
	support *spgist.Support
	opts    Options
	metrics index.MetricsCollector

	root   *node
	points map[uint32]geom.Point
	closed bool
}

// New creates a new octree.
func New(optFns ...Option) (*Octree, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	var err error
	switch {
	case opts.LeafCapacity < 2:
		err = errors.Wrapf(ErrInvalidLeafCapacity, "got %d", opts.LeafCapacity)
	case opts.MaxDepth < 1:
		err = errors.Wrapf(ErrInvalidMaxDepth, "got %d", opts.MaxDepth)
	}
	if err != nil {
		if opts.Logger != nil {
			opts.Logger.Error("invalid octree configuration", "error", err)
		}
		return nil, err
	}

	var metrics index.MetricsCollector = index.NoopMetricsCollector{}
	if opts.Metrics != nil {
		metrics = opts.Metrics
	}

	return &Octree{
		support: spgist.New(spgist.WithCentroid(opts.Centroid), spgist.WithLogger(opts.Logger)),
		opts:    opts,
		metrics: metrics,
		root:    &node{},
		points:  make(map[uint32]geom.Point),
	}, nil
}

// Name returns the name of the index.
func (*Octree) Name() string { return "Octree" }

// Len returns the number of stored points.
func (o *Octree) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.points)
}

// Depth returns the number of inner levels on the longest path.
func (o *Octree) Depth() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return depthOf(o.root)
}

func depthOf(n *node) int {
	if n == nil || !n.inner {
		return 0
	}
	d := 0
	for _, c := range n.children {
		d = max(d, depthOf(c))
	}
	return d + 1
}

// Close releases the octree.
func (o *Octree) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return index.ErrClosed
	}
	o.closed = true
	o.root = nil
	o.points = nil
	return nil
}

// Insert stores the point shape under id. Only points can be stored.
func (o *Octree) Insert(ctx context.Context, id uint32, shape geom.Shape) (err error) {
	start := time.Now()
	defer func() { o.metrics.RecordInsert(time.Since(start), err) }()

	if err := ctx.Err(); err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return index.ErrClosed
	}
	return o.insert(id, shape)
}

// Build inserts items in order. Items are validated before any of them is
// stored.
func (o *Octree) Build(ctx context.Context, items []index.Item) (err error) {
	start := time.Now()
	defer func() { o.metrics.RecordInsert(time.Since(start), err) }()

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return index.ErrClosed
	}

	seen := make(map[uint32]struct{}, len(items))
	for i, it := range items {
		if _, err := o.check(it.ID, it.Shape); err != nil {
			return errors.Wrapf(err, "item %d", i)
		}
		if _, ok := seen[it.ID]; ok {
			return errors.Wrapf(index.ErrDuplicateID, "id %d", it.ID)
		}
		seen[it.ID] = struct{}{}
	}

	for _, it := range items {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := o.insert(it.ID, it.Shape); err != nil {
			return err
		}
	}
	return nil
}

// check validates a shape for insertion and returns its point.
func (o *Octree) check(id uint32, shape geom.Shape) (geom.Point, error) {
	if _, ok := o.points[id]; ok {
		return geom.Point{}, errors.Wrapf(index.ErrDuplicateID, "id %d", id)
	}
	p, ok := shape.(geom.Point)
	if !ok {
		return geom.Point{}, &index.ErrShapeMismatch{Index: o.Name(), Expected: geom.KindPoint, Actual: kindOf(shape)}
	}
	// Points that fit no octant of any centroid are rejected before they
	// reach a leaf.
	if _, err := spgist.GetOctant(geom.Point{}, p); err != nil {
		return geom.Point{}, err
	}
	return p, nil
}

func (o *Octree) insert(id uint32, shape geom.Shape) error {
	p, err := o.check(id, shape)
	if err != nil {
		return err
	}

	n, depth := o.root, 0
	for n.inner {
		out, err := o.support.Choose(spgist.ChooseIn{Centroid: n.centroid, Point: p, AllTheSame: n.allTheSame})
		if err != nil {
			return err
		}
		if n.children[out.Node] == nil {
			n.children[out.Node] = &node{}
		}
		n = n.children[out.Node]
		depth++
	}

	n.entries = append(n.entries, leafEntry{point: p, id: id})
	o.points[id] = p

	if len(n.entries) > o.opts.LeafCapacity {
		o.split(n, depth)
	}
	return nil
}

// split turns the leaf n into an inner node. A leaf at MaxDepth, or one
// whose points give no usable centroid, stays oversized.
func (o *Octree) split(n *node, depth int) {
	if depth >= o.opts.MaxDepth {
		return
	}

	points := make([]geom.Point, len(n.entries))
	for i, e := range n.entries {
		points[i] = e.point
	}

	out, err := o.support.PickSplit(points)
	if err != nil {
		if o.opts.Logger != nil {
			o.opts.Logger.Warn("octree split skipped", "entries", len(points), "error", err)
		}
		return
	}

	allTheSame := true
	for _, c := range out.Nodes[1:] {
		if c != out.Nodes[0] {
			allTheSame = false
			break
		}
	}

	entries := n.entries
	*n = node{inner: true, centroid: out.Centroid, allTheSame: allTheSame}
	for i, e := range entries {
		c := out.Nodes[i]
		if allTheSame {
			c = i % spgist.NumNodes
		}
		if n.children[c] == nil {
			n.children[c] = &node{}
		}
		n.children[c].entries = append(n.children[c].entries, leafEntry{point: out.Leaves[i], id: e.id})
	}

	o.metrics.RecordSplit(len(entries), allTheSame)
	if o.opts.Logger != nil {
		o.opts.Logger.Debug("octree leaf split",
			"entries", len(entries), "depth", depth, "centroid", out.Centroid.String(), "all_the_same", allTheSame)
	}
}

func scanKeys(queries []index.Query) []spgist.ScanKey {
	keys := make([]spgist.ScanKey, len(queries))
	for i, q := range queries {
		keys[i] = spgist.ScanKey{Strategy: q.Strategy, Query: q.Shape}
	}
	return keys
}

// Search returns the ids of the points satisfying every query. Without
// queries every id matches.
func (o *Octree) Search(ctx context.Context, queries ...index.Query) (hits index.Hits, err error) {
	start := time.Now()
	defer func() { o.metrics.RecordSearch(hits.Len(), time.Since(start), err) }()

	hits = index.NewHits()

	o.mu.RLock()
	defer o.mu.RUnlock()

	if o.closed {
		return hits, index.ErrClosed
	}

	keys := scanKeys(queries)
	if _, err := o.support.LeafConsistent(geom.Point{}, keys, nil); err != nil {
		if o.opts.Logger != nil {
			o.opts.Logger.Error("octree search rejected", "error", err)
		}
		return hits, err
	}

	stack := []*node{o.root}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return index.NewHits(), err
		}

		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if n.inner {
			out, err := o.support.InnerConsistent(spgist.InnerIn{
				Centroid:   n.centroid,
				ScanKeys:   keys,
				AllTheSame: n.allTheSame,
			})
			if err != nil {
				return index.NewHits(), err
			}
			for _, c := range out.Nodes {
				if child := n.children[c]; child != nil {
					stack = append(stack, child)
				}
			}
			continue
		}

		for _, e := range n.entries {
			out, err := o.support.LeafConsistent(e.point, keys, nil)
			if err != nil {
				return index.NewHits(), err
			}
			if out.Match {
				hits.Add(e.id, out.Recheck)
			}
		}
	}

	return hits, nil
}

// knnItem is a node with its region, or a stored point, waiting in the
// scan queue.
type knnItem struct {
	node      *node
	traversal *geom.Box
	id        uint32
}

// Nearest returns up to k ids ordered by distance to q. Only point queries
// can order an octree scan.
func (o *Octree) Nearest(ctx context.Context, q geom.Shape, k int) (res []index.Neighbor, err error) {
	start := time.Now()
	defer func() { o.metrics.RecordNearest(k, time.Since(start), err) }()

	if k < 1 {
		return nil, errors.Wrapf(index.ErrInvalidK, "got %d", k)
	}

	o.mu.RLock()
	defer o.mu.RUnlock()

	if o.closed {
		return nil, index.ErrClosed
	}

	p, ok := q.(geom.Point)
	if !ok {
		return nil, &index.ErrShapeMismatch{Index: o.Name(), Expected: geom.KindPoint, Actual: kindOf(q)}
	}
	orderBys := []geom.Point{p}
	pq := queue.NewMin[knnItem](2 * spgist.NumNodes)
	pq.PushItem(queue.Item[knnItem]{Value: knnItem{node: o.root}})

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

		switch {
		case it.node == nil:
			res = append(res, index.Neighbor{ID: it.id, Distance: top.Distance})
		case it.node.inner:
			n := it.node
			out, err := o.support.InnerConsistent(spgist.InnerIn{
				Centroid:   n.centroid,
				OrderBys:   orderBys,
				Traversal:  it.traversal,
				AllTheSame: n.allTheSame,
			})
			if err != nil {
				return nil, err
			}
			for i, c := range out.Nodes {
				child := n.children[c]
				if child == nil {
					continue
				}
				pq.PushItem(queue.Item[knnItem]{
					Value:    knnItem{node: child, traversal: &out.Traversal[i]},
					Distance: orderable(out.Distances[i][0]),
				})
			}
		default:
			for _, e := range it.node.entries {
				out, err := o.support.LeafConsistent(e.point, nil, orderBys)
				if err != nil {
					return nil, err
				}
				pq.PushItem(queue.Item[knnItem]{Value: knnItem{id: e.id}, Distance: orderable(out.Distances[0])})
			}
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

// kindOf maps a nil shape to geom.NumKinds.
func kindOf(s geom.Shape) geom.Kind {
	if s == nil {
		return geom.NumKinds
	}
	return s.Kind()
}
