package kdheap

import (
	"math"

	"github.com/katalvlaran/knnspace/cloud"
)

// Heap is a fixed-capacity max-heap of (distance, index) candidates.
// The root is always the current worst kept candidate: inserting a new
// candidate is a single comparison against the root once the heap is
// full. Zero value is not usable; construct with New.
type Heap[T cloud.Scalar] struct {
	capacity int
	dist     []T
	idx      []int
}

// New allocates a Heap capable of holding up to k candidates.
func New[T cloud.Scalar](k int) *Heap[T] {
	return &Heap[T]{
		capacity: k,
		dist:     make([]T, 0, k),
		idx:      make([]int, 0, k),
	}
}

// Len reports how many candidates are currently held.
func (h *Heap[T]) Len() int { return len(h.dist) }

// Capacity reports k, the heap's fixed capacity.
func (h *Heap[T]) Capacity() int { return h.capacity }

// Full reports whether the heap holds k candidates.
func (h *Heap[T]) Full() bool { return len(h.dist) >= h.capacity }

// TopDist returns the worst (largest) kept distance, or +Inf while the
// heap has not yet reached capacity — pruning on TopDist is then always
// a no-op until the heap fills up, which is the desired behaviour.
func (h *Heap[T]) TopDist() T {
	if len(h.dist) < h.capacity {
		return T(math.Inf(1))
	}
	return h.dist[0]
}

// Reset empties the heap without releasing its backing arrays, so a
// single Heap can be reused across queries.
func (h *Heap[T]) Reset() {
	h.dist = h.dist[:0]
	h.idx = h.idx[:0]
}

// TryInsert inserts (dist, idx) if the heap is not yet full, or if it is
// strictly better than the current worst kept candidate. Ties on
// distance break by index: a candidate is only "better" than an equal-
// distance incumbent if its index is smaller, so ties resolve
// deterministically. Returns whether the candidate was inserted.
func (h *Heap[T]) TryInsert(dist T, idx int) bool {
	if len(h.dist) < h.capacity {
		h.dist = append(h.dist, dist)
		h.idx = append(h.idx, idx)
		siftUp(h.dist, h.idx, len(h.dist)-1)
		return true
	}
	if !worse(h.dist[0], h.idx[0], dist, idx) {
		return false
	}
	h.dist[0] = dist
	h.idx[0] = idx
	siftDown(h.dist, h.idx, 0)
	return true
}

// DrainSorted returns the heap's indices sorted by ascending
// (distance, index) — a heapsort-style extraction run on copies of the
// backing arrays, so the heap itself is left unchanged.
func (h *Heap[T]) DrainSorted() []int {
	n := len(h.dist)
	dist := append([]T(nil), h.dist...)
	idx := append([]int(nil), h.idx...)
	result := make([]int, n)
	for size := n; size > 0; size-- {
		result[size-1] = idx[0]
		dist[0] = dist[size-1]
		idx[0] = idx[size-1]
		siftDown(dist[:size-1], idx[:size-1], 0)
	}
	return result
}

// worse reports whether candidate (d1, i1) is worse than (d2, i2): a
// larger squared distance is worse; on a tie, a larger index is worse.
func worse[T cloud.Scalar](d1 T, i1 int, d2 T, i2 int) bool {
	if d1 != d2 {
		return d1 > d2
	}
	return i1 > i2
}

func siftUp[T cloud.Scalar](dist []T, idx []int, i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !worse(dist[i], idx[i], dist[parent], idx[parent]) {
			break
		}
		dist[i], dist[parent] = dist[parent], dist[i]
		idx[i], idx[parent] = idx[parent], idx[i]
		i = parent
	}
}

func siftDown[T cloud.Scalar](dist []T, idx []int, i int) {
	n := len(dist)
	for {
		left, right := 2*i+1, 2*i+2
		largest := i
		if left < n && worse(dist[left], idx[left], dist[largest], idx[largest]) {
			largest = left
		}
		if right < n && worse(dist[right], idx[right], dist[largest], idx[largest]) {
			largest = right
		}
		if largest == i {
			break
		}
		dist[i], dist[largest] = dist[largest], dist[i]
		idx[i], idx[largest] = idx[largest], idx[i]
		i = largest
	}
}
