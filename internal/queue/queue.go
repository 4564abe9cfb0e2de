package queue

import "container/heap"

// Compile time check to ensure PriorityQueue satisfies the heap interface.
var _ heap.Interface = (*PriorityQueue[int])(nil)

// Item represents an entry in the priority queue.
// Items are stored by value; T should be small (an index or a short struct).
type Item[T any] struct {
	Value    T       // Value is the payload of the item.
	Distance float64 // Distance is the priority of the item in the queue.
}

// PriorityQueue is a binary heap ordered by Distance.
// Ties are broken by insertion order so scans are deterministic.
type PriorityQueue[T any] struct {
	items []Item[T]
	seqs  []uint64
	seq   uint64
}

// NewMin initializes a new priority queue with minimum priority.
func NewMin[T any](capacity int) *PriorityQueue[T] {
	return &PriorityQueue[T]{
		items: make([]Item[T], 0, capacity),
		seqs:  make([]uint64, 0, capacity),
	}
}

// TopItem returns the top element of the heap.
func (pq *PriorityQueue[T]) TopItem() (Item[T], bool) {
	if len(pq.items) == 0 {
		return Item[T]{}, false
	}
	return pq.items[0], true
}

// PushItem inserts an item while maintaining the heap invariant.
func (pq *PriorityQueue[T]) PushItem(item Item[T]) {
	pq.append(item)
	pq.siftUp(len(pq.items) - 1)
}

// PopItem removes and returns the top element while maintaining the heap invariant.
func (pq *PriorityQueue[T]) PopItem() (Item[T], bool) {
	n := len(pq.items)
	if n == 0 {
		return Item[T]{}, false
	}
	root := pq.items[0]
	pq.Swap(0, n-1)
	pq.truncate()
	if n-1 > 0 {
		pq.siftDown(0)
	}
	return root, true
}

func (pq *PriorityQueue[T]) append(item Item[T]) {
	pq.items = append(pq.items, item)
	pq.seqs = append(pq.seqs, pq.seq)
	pq.seq++
}

func (pq *PriorityQueue[T]) truncate() {
	n := len(pq.items)
	pq.items[n-1] = Item[T]{} // Zero out for GC
	pq.items = pq.items[:n-1]
	pq.seqs = pq.seqs[:n-1]
}

func (pq *PriorityQueue[T]) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !pq.Less(i, p) {
			return
		}
		pq.Swap(i, p)
		i = p
	}
}

func (pq *PriorityQueue[T]) siftDown(i int) {
	n := len(pq.items)
	for {
		l := 2*i + 1
		if l >= n {
			return
		}
		best := l
		r := l + 1
		if r < n && pq.Less(r, l) {
			best = r
		}
		if !pq.Less(best, i) {
			return
		}
		pq.Swap(i, best)
		i = best
	}
}

// Len returns the number of elements in the priority queue.
func (pq *PriorityQueue[T]) Len() int { return len(pq.items) }

// Less reports whether the element with index i should sort before the element with index j.
func (pq *PriorityQueue[T]) Less(i, j int) bool {
	di, dj := pq.items[i].Distance, pq.items[j].Distance
	if di == dj {
		return pq.seqs[i] < pq.seqs[j]
	}
	return di < dj
}

// Swap swaps the elements with indexes i and j.
func (pq *PriorityQueue[T]) Swap(i, j int) {
	pq.items[i], pq.items[j] = pq.items[j], pq.items[i]
	pq.seqs[i], pq.seqs[j] = pq.seqs[j], pq.seqs[i]
}

// Push adds x to the priority queue. It is meant for container/heap.
func (pq *PriorityQueue[T]) Push(x any) {
	pq.append(x.(Item[T]))
}

// Pop removes and returns the last element. It is meant for container/heap.
func (pq *PriorityQueue[T]) Pop() any {
	n := len(pq.items)
	if n == 0 {
		return Item[T]{}
	}
	item := pq.items[n-1]
	pq.truncate()
	return item
}

// Reset clears the priority queue for reuse.
func (pq *PriorityQueue[T]) Reset() {
	clear(pq.items)
	pq.items = pq.items[:0]
	pq.seqs = pq.seqs[:0]
	pq.seq = 0
}
