package kdtree

import (
	"fmt"

	"github.com/katalvlaran/knnspace/cloud"
	"github.com/katalvlaran/knnspace/kdheap"
	"github.com/katalvlaran/knnspace/searcher"
)

// BalancedStack is the points-in-nodes, implicit-layout k-d tree
// searcher using classical near-child-first recursive descent with a
// single mutable offset vector, saved and restored around the far-
// child call (the alternative to BalancedPQ's priority-queue
// strategy): cheaper per-node bookkeeping than BalancedPQ's per-
// frontier-entry offset copies, at the cost of always visiting the
// near child before any pruning check can fire.
type BalancedStack[T cloud.Scalar] struct {
	base     *balancedNodesBase[T]
	counters cloud.Counters
}

var _ searcher.Interface[float64] = (*BalancedStack[float64])(nil)

// NewBalancedStack builds a BalancedStack searcher over c, reusing the
// same node array a BalancedPQ would build for the same cloud.
func NewBalancedStack[T cloud.Scalar](c *cloud.Cloud[T]) (*BalancedStack[T], error) {
	if c == nil {
		return nil, fmt.Errorf("kdtree: NewBalancedStack: %w", cloud.ErrNilMatrix)
	}
	return &BalancedStack[T]{base: buildBalancedNodes[T](c)}, nil
}

type balancedStackWalk[T cloud.Scalar] struct {
	base      *balancedNodesBase[T]
	q         []T
	h         *kdheap.Heap[T]
	allowSelf bool
	scale     T
	off       []T
	visits    uint64
}

// Knn implements searcher.Interface.
func (s *BalancedStack[T]) Knn(q []T, k int, eps T, flags searcher.Flags) ([]int, error) {
	c := s.base.cloud
	if err := searcher.ValidateQuery(c.Dims(), k, c.Len(), eps, q); err != nil {
		return nil, err
	}

	off, rd := initialOffset(q, c.MinBound(), c.MaxBound())
	w := &balancedStackWalk[T]{
		base:      s.base,
		q:         q,
		h:         kdheap.New[T](k),
		allowSelf: flags.Has(searcher.AllowSelfMatch),
		scale:     onePlusEpsSquared(eps),
		off:       off,
	}
	w.descend(0, rd)
	s.counters.RecordQuery(w.visits)

	return w.h.DrainSorted(), nil
}

func (w *balancedStackWalk[T]) descend(slot int, rd T) {
	if slot >= len(w.base.nodes) || w.base.nodes[slot].dim == emptySlot {
		return
	}
	if w.h.Full() && rd*w.scale > w.h.TopDist() {
		return
	}

	node := w.base.nodes[slot]
	w.visits++
	dist := cloud.SquaredDistance(w.q, w.base.cloud.Point(node.idx))
	if dist != 0 || w.allowSelf {
		w.h.TryInsert(dist, node.idx)
	}
	if node.dim == leafDim {
		return
	}

	diff := w.q[node.dim] - node.cut
	near, far := 2*slot+1, 2*slot+2
	if diff > 0 {
		near, far = far, near
	}

	w.descend(near, rd)

	oldOff := w.off[node.dim]
	newOff := diff
	if newOff < 0 {
		newOff = -newOff
	}
	farRd := rd - oldOff*oldOff + newOff*newOff

	w.off[node.dim] = newOff
	w.descend(far, farRd)
	w.off[node.dim] = oldOff
}

// KnnM implements searcher.Interface.
func (s *BalancedStack[T]) KnnM(q *cloud.Matrix[T], k int, eps T, flags searcher.Flags) ([]int, error) {
	return searcher.DefaultKnnM[T](s.Knn, q, k, eps, flags)
}

// Stats implements searcher.Interface.
func (s *BalancedStack[T]) Stats() cloud.Statistics { return s.counters.Snapshot() }
