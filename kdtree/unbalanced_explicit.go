package kdtree

import (
	"fmt"

	"github.com/katalvlaran/knnspace/cloud"
	"github.com/katalvlaran/knnspace/kdheap"
	"github.com/katalvlaran/knnspace/searcher"
)

// nodeUE is UnbalancedExplicit's node slot: the same sliding-midpoint
// build and rightChild layout as UnbalancedImplicit, but each internal
// node additionally stores its own cell's low and high extent along
// its own split dimension (the pre-split cell, inherited from the
// parent during the build). Search uses these two scalars to compute
// each descent step's distance contribution directly, so no offset
// vector needs to be threaded or restored through the recursion at all.
type nodeUE[T cloud.Scalar] struct {
	dim        int
	cut        T
	idx        int
	low, high  T
	rightChild int
}

// UnbalancedExplicit is the points-in-leaves, sliding-midpoint-split
// k-d tree searcher whose nodes carry explicit cell bounds.
type UnbalancedExplicit[T cloud.Scalar] struct {
	cloud    *cloud.Cloud[T]
	nodes    []nodeUE[T]
	counters cloud.Counters
}

var _ searcher.Interface[float64] = (*UnbalancedExplicit[float64])(nil)

// NewUnbalancedExplicit builds the searcher over c.
func NewUnbalancedExplicit[T cloud.Scalar](c *cloud.Cloud[T]) (*UnbalancedExplicit[T], error) {
	if c == nil {
		return nil, fmt.Errorf("kdtree: NewUnbalancedExplicit: %w", cloud.ErrNilMatrix)
	}

	n := c.Len()
	idxs := make([]int, n)
	for i := range idxs {
		idxs[i] = i
	}
	nodes := make([]nodeUE[T], 0, 2*n)
	buildUERecursive(c, idxs, c.MinBound(), c.MaxBound(), &nodes)

	return &UnbalancedExplicit[T]{cloud: c, nodes: nodes}, nil
}

func buildUERecursive[T cloud.Scalar](c *cloud.Cloud[T], idxs []int, minV, maxV []T, nodes *[]nodeUE[T]) int {
	slot := len(*nodes)
	*nodes = append(*nodes, nodeUE[T]{})

	if len(idxs) == 1 {
		(*nodes)[slot] = nodeUE[T]{dim: leafDim, idx: idxs[0], rightChild: invalidChild}
		return slot
	}

	axis, cut, left, right := slidingMidpointSplit[T](c, idxs, minV, maxV)

	leftMax := append([]T(nil), maxV...)
	leftMax[axis] = cut
	buildUERecursive(c, left, minV, leftMax, nodes)

	rightMin := append([]T(nil), minV...)
	rightMin[axis] = cut
	rightChild := buildUERecursive(c, right, rightMin, maxV, nodes)

	(*nodes)[slot] = nodeUE[T]{dim: axis, cut: cut, low: minV[axis], high: maxV[axis], rightChild: rightChild}
	return slot
}

// clamp1D returns the distance from x to its nearest point in [lo, hi].
func clamp1D[T cloud.Scalar](x, lo, hi T) T {
	switch {
	case x < lo:
		return lo - x
	case x > hi:
		return x - hi
	default:
		return 0
	}
}

// initialClampRd seeds the root's lower-bound squared distance for a
// query that may fall outside the cloud's own bounding box: every
// per-node oldContrib computed during descent assumes rd already
// accounts for q's displacement past the root cell along every axis,
// exactly as initialOffset seeds the implicit-bounds variants' offset
// vector before the first descent step.
func initialClampRd[T cloud.Scalar](q, minV, maxV []T) T {
	var rd T
	for d := range q {
		c := clamp1D(q[d], minV[d], maxV[d])
		rd += c * c
	}
	return rd
}

type ueWalk[T cloud.Scalar] struct {
	s         *UnbalancedExplicit[T]
	q         []T
	h         *kdheap.Heap[T]
	allowSelf bool
	scale     T
	visits    uint64
}

// Knn implements searcher.Interface.
func (s *UnbalancedExplicit[T]) Knn(q []T, k int, eps T, flags searcher.Flags) ([]int, error) {
	if err := searcher.ValidateQuery(s.cloud.Dims(), k, s.cloud.Len(), eps, q); err != nil {
		return nil, err
	}

	w := &ueWalk[T]{
		s:         s,
		q:         q,
		h:         kdheap.New[T](k),
		allowSelf: flags.Has(searcher.AllowSelfMatch),
		scale:     onePlusEpsSquared(eps),
	}
	if len(s.nodes) > 0 {
		w.descend(0, initialClampRd(q, s.cloud.MinBound(), s.cloud.MaxBound()))
	}
	s.counters.RecordQuery(w.visits)

	return w.h.DrainSorted(), nil
}

// descend walks the tree carrying rd, the lower-bound squared distance
// from q to the current subtree's cell. Unlike the implicit-bounds
// variants, rd is never restored on return — it is recomputed for the
// far child directly from that node's stored low/high, so no mutable
// per-call offset state needs to be threaded through the recursion.
func (w *ueWalk[T]) descend(slot int, rd T) {
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

	x := w.q[node.dim]
	nearSlot, farSlot := slot+1, node.rightChild
	farLow, farHigh := node.cut, node.high
	if x > node.cut {
		nearSlot, farSlot = farSlot, nearSlot
		farLow, farHigh = node.low, node.cut
	}

	w.descend(nearSlot, rd)

	oldContrib := clamp1D(x, node.low, node.high)
	newContrib := clamp1D(x, farLow, farHigh)
	farRd := rd - oldContrib*oldContrib + newContrib*newContrib
	w.descend(farSlot, farRd)
}

// KnnM implements searcher.Interface.
func (s *UnbalancedExplicit[T]) KnnM(q *cloud.Matrix[T], k int, eps T, flags searcher.Flags) ([]int, error) {
	return searcher.DefaultKnnM[T](s.Knn, q, k, eps, flags)
}

// Stats implements searcher.Interface.
func (s *UnbalancedExplicit[T]) Stats() cloud.Statistics { return s.counters.Snapshot() }
