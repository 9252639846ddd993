package kdtree

import (
	"fmt"

	"github.com/katalvlaran/knnspace/cloud"
	"github.com/katalvlaran/knnspace/kdheap"
	"github.com/katalvlaran/knnspace/searcher"
)

// nodeUI is one slot of UnbalancedImplicit's preorder node slice:
// leaves hold a cloud point index with dim == leafDim; internal nodes
// hold a split axis/cut and a rightChild slot index —
// the left child is always the very next slot in preorder, so only the
// right child needs to be stored explicitly.
type nodeUI[T cloud.Scalar] struct {
	dim        int
	cut        T
	idx        int
	rightChild int
}

// UnbalancedImplicit is the points-in-leaves, sliding-midpoint-split
// k-d tree searcher with explicit right-child links but no stored
// per-node cell bounds: search re-derives each subtree's bound from
// the query's offset vector, updated incrementally during descent.
type UnbalancedImplicit[T cloud.Scalar] struct {
	cloud    *cloud.Cloud[T]
	nodes    []nodeUI[T]
	counters cloud.Counters
}

var _ searcher.Interface[float64] = (*UnbalancedImplicit[float64])(nil)

// NewUnbalancedImplicit builds an UnbalancedImplicit searcher over c.
func NewUnbalancedImplicit[T cloud.Scalar](c *cloud.Cloud[T]) (*UnbalancedImplicit[T], error) {
	if c == nil {
		return nil, fmt.Errorf("kdtree: NewUnbalancedImplicit: %w", cloud.ErrNilMatrix)
	}

	n := c.Len()
	idxs := make([]int, n)
	for i := range idxs {
		idxs[i] = i
	}
	nodes := make([]nodeUI[T], 0, 2*n)
	buildUIRecursive(c, idxs, c.MinBound(), c.MaxBound(), &nodes)

	return &UnbalancedImplicit[T]{cloud: c, nodes: nodes}, nil
}

// buildUIRecursive appends the subtree over idxs to *nodes in preorder
// and returns the slot it was written to.
func buildUIRecursive[T cloud.Scalar](c *cloud.Cloud[T], idxs []int, minV, maxV []T, nodes *[]nodeUI[T]) int {
	slot := len(*nodes)
	*nodes = append(*nodes, nodeUI[T]{})

	if len(idxs) == 1 {
		(*nodes)[slot] = nodeUI[T]{dim: leafDim, idx: idxs[0], rightChild: invalidChild}
		return slot
	}

	axis, cut, left, right := slidingMidpointSplit[T](c, idxs, minV, maxV)

	leftMax := append([]T(nil), maxV...)
	leftMax[axis] = cut
	buildUIRecursive(c, left, minV, leftMax, nodes)

	rightMin := append([]T(nil), minV...)
	rightMin[axis] = cut
	rightChild := buildUIRecursive(c, right, rightMin, maxV, nodes)

	(*nodes)[slot] = nodeUI[T]{dim: axis, cut: cut, rightChild: rightChild}
	return slot
}

type uiWalk[T cloud.Scalar] struct {
	s         *UnbalancedImplicit[T]
	q         []T
	h         *kdheap.Heap[T]
	allowSelf bool
	scale     T
	off       []T
	visits    uint64
}

// Knn implements searcher.Interface.
func (s *UnbalancedImplicit[T]) Knn(q []T, k int, eps T, flags searcher.Flags) ([]int, error) {
	if err := searcher.ValidateQuery(s.cloud.Dims(), k, s.cloud.Len(), eps, q); err != nil {
		return nil, err
	}

	off, rd := initialOffset(q, s.cloud.MinBound(), s.cloud.MaxBound())
	w := &uiWalk[T]{
		s:         s,
		q:         q,
		h:         kdheap.New[T](k),
		allowSelf: flags.Has(searcher.AllowSelfMatch),
		scale:     onePlusEpsSquared(eps),
		off:       off,
	}
	if len(s.nodes) > 0 {
		w.descend(0, rd)
	}
	s.counters.RecordQuery(w.visits)

	return w.h.DrainSorted(), nil
}

func (w *uiWalk[T]) descend(slot int, rd T) {
	if w.h.Full() && rd*w.scale > w.h.TopDist() {
		return
	}

	node := w.s.nodes[slot]
	if node.dim == leafDim {
		w.visits++
		dist := cloud.SquaredDistance(w.q, w.s.cloud.Point(node.idx))
		if dist != 0 || w.allowSelf {
			w.h.TryInsert(dist, node.idx)
		}
		return
	}

	diff := w.q[node.dim] - node.cut
	nearSlot, farSlot := slot+1, node.rightChild
	if diff > 0 {
		nearSlot, farSlot = farSlot, nearSlot
	}

	w.descend(nearSlot, rd)

	oldOff := w.off[node.dim]
	newOff := diff
	if newOff < 0 {
		newOff = -newOff
	}
	farRd := rd - oldOff*oldOff + newOff*newOff

	w.off[node.dim] = newOff
	w.descend(farSlot, farRd)
	w.off[node.dim] = oldOff
}

// KnnM implements searcher.Interface.
func (s *UnbalancedImplicit[T]) KnnM(q *cloud.Matrix[T], k int, eps T, flags searcher.Flags) ([]int, error) {
	return searcher.DefaultKnnM[T](s.Knn, q, k, eps, flags)
}

// Stats implements searcher.Interface.
func (s *UnbalancedImplicit[T]) Stats() cloud.Statistics { return s.counters.Snapshot() }
