package kdtree

import (
	"fmt"

	"github.com/katalvlaran/knnspace/cloud"
	"github.com/katalvlaran/knnspace/kdheap"
	"github.com/katalvlaran/knnspace/searcher"
)

// nodeUIOpt is UnbalancedImplicitOptimized's node slot: identical
// layout to nodeUI, but leaves additionally cache the point's own
// column slice (cloud.Matrix.Col already hands back a slice into the
// matrix's backing array with no copy, so this costs one pointer
// per leaf, not a duplicated point) so descent never has to chase
// through cloud.Cloud.Point during the hot comparison loop.
type nodeUIOpt[T cloud.Scalar] struct {
	dim        int
	cut        T
	idx        int
	point      []T
	rightChild int
}

// UnbalancedImplicitOptimized is UnbalancedImplicit's algorithm with a
// cache-friendlier leaf representation and a self-match split chosen
// once per call rather than tested on every visit — approximated as a
// one-time dispatch between two closures, since Go generics offer no
// compile-time specialization per call site without code generation.
type UnbalancedImplicitOptimized[T cloud.Scalar] struct {
	cloud    *cloud.Cloud[T]
	nodes    []nodeUIOpt[T]
	counters cloud.Counters
}

var _ searcher.Interface[float64] = (*UnbalancedImplicitOptimized[float64])(nil)

// NewUnbalancedImplicitOptimized builds the searcher over c.
func NewUnbalancedImplicitOptimized[T cloud.Scalar](c *cloud.Cloud[T]) (*UnbalancedImplicitOptimized[T], error) {
	if c == nil {
		return nil, fmt.Errorf("kdtree: NewUnbalancedImplicitOptimized: %w", cloud.ErrNilMatrix)
	}

	n := c.Len()
	idxs := make([]int, n)
	for i := range idxs {
		idxs[i] = i
	}
	nodes := make([]nodeUIOpt[T], 0, 2*n)
	buildUIOptRecursive(c, idxs, c.MinBound(), c.MaxBound(), &nodes)

	return &UnbalancedImplicitOptimized[T]{cloud: c, nodes: nodes}, nil
}

func buildUIOptRecursive[T cloud.Scalar](c *cloud.Cloud[T], idxs []int, minV, maxV []T, nodes *[]nodeUIOpt[T]) int {
	slot := len(*nodes)
	*nodes = append(*nodes, nodeUIOpt[T]{})

	if len(idxs) == 1 {
		(*nodes)[slot] = nodeUIOpt[T]{dim: leafDim, idx: idxs[0], point: c.Point(idxs[0]), rightChild: invalidChild}
		return slot
	}

	axis, cut, left, right := slidingMidpointSplit[T](c, idxs, minV, maxV)

	leftMax := append([]T(nil), maxV...)
	leftMax[axis] = cut
	buildUIOptRecursive(c, left, minV, leftMax, nodes)

	rightMin := append([]T(nil), minV...)
	rightMin[axis] = cut
	rightChild := buildUIOptRecursive(c, right, rightMin, maxV, nodes)

	(*nodes)[slot] = nodeUIOpt[T]{dim: axis, cut: cut, rightChild: rightChild}
	return slot
}

type uiOptWalk[T cloud.Scalar] struct {
	s      *UnbalancedImplicitOptimized[T]
	q      []T
	h      *kdheap.Heap[T]
	scale  T
	off    []T
	visits uint64
}

// Knn implements searcher.Interface.
func (s *UnbalancedImplicitOptimized[T]) Knn(q []T, k int, eps T, flags searcher.Flags) ([]int, error) {
	if err := searcher.ValidateQuery(s.cloud.Dims(), k, s.cloud.Len(), eps, q); err != nil {
		return nil, err
	}

	off, rd := initialOffset(q, s.cloud.MinBound(), s.cloud.MaxBound())
	w := &uiOptWalk[T]{
		s:     s,
		q:     q,
		h:     kdheap.New[T](k),
		scale: onePlusEpsSquared(eps),
		off:   off,
	}

	if len(s.nodes) > 0 {
		if flags.Has(searcher.AllowSelfMatch) {
			w.descendAllowSelf(0, rd)
		} else {
			w.descendSkipSelf(0, rd)
		}
	}
	s.counters.RecordQuery(w.visits)

	return w.h.DrainSorted(), nil
}

func (w *uiOptWalk[T]) descendAllowSelf(slot int, rd T) {
	if w.h.Full() && rd*w.scale > w.h.TopDist() {
		return
	}
	node := w.s.nodes[slot]
	if node.dim == leafDim {
		w.visits++
		dist := cloud.SquaredDistance(w.q, node.point)
		w.h.TryInsert(dist, node.idx)
		return
	}
	w.descendInternal(node, slot, rd, w.descendAllowSelf)
}

func (w *uiOptWalk[T]) descendSkipSelf(slot int, rd T) {
	if w.h.Full() && rd*w.scale > w.h.TopDist() {
		return
	}
	node := w.s.nodes[slot]
	if node.dim == leafDim {
		w.visits++
		dist := cloud.SquaredDistance(w.q, node.point)
		if dist != 0 {
			w.h.TryInsert(dist, node.idx)
		}
		return
	}
	w.descendInternal(node, slot, rd, w.descendSkipSelf)
}

func (w *uiOptWalk[T]) descendInternal(node nodeUIOpt[T], slot int, rd T, recurse func(int, T)) {
	diff := w.q[node.dim] - node.cut
	nearSlot, farSlot := slot+1, node.rightChild
	if diff > 0 {
		nearSlot, farSlot = farSlot, nearSlot
	}

	recurse(nearSlot, rd)

	oldOff := w.off[node.dim]
	newOff := diff
	if newOff < 0 {
		newOff = -newOff
	}
	farRd := rd - oldOff*oldOff + newOff*newOff

	w.off[node.dim] = newOff
	recurse(farSlot, farRd)
	w.off[node.dim] = oldOff
}

// KnnM implements searcher.Interface.
func (s *UnbalancedImplicitOptimized[T]) KnnM(q *cloud.Matrix[T], k int, eps T, flags searcher.Flags) ([]int, error) {
	return searcher.DefaultKnnM[T](s.Knn, q, k, eps, flags)
}

// Stats implements searcher.Interface.
func (s *UnbalancedImplicitOptimized[T]) Stats() cloud.Statistics { return s.counters.Snapshot() }
