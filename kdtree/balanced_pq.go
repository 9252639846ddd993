package kdtree

import (
	"container/heap"
	"fmt"

	"github.com/katalvlaran/knnspace/cloud"
	"github.com/katalvlaran/knnspace/kdheap"
	"github.com/katalvlaran/knnspace/searcher"
)

// frontierItem is one pending subtree in the best-first priority-queue
// descent: slot is its index into the shared node array, rd is its
// lower-bound squared distance from the query, and off is that
// subtree's own offset vector (each frontier entry carries its own
// copy, since — unlike recursive stack descent — sibling entries can
// be live in the queue at once and cannot share one mutable vector).
type frontierItem[T cloud.Scalar] struct {
	slot int
	rd   T
	off  []T
}

// pqFrontier is a min-heap of *frontierItem ordered by rd ascending,
// in the familiar container/heap nodePQ style used by Go shortest-path
// priority queues.
type pqFrontier[T cloud.Scalar] []*frontierItem[T]

func (pq pqFrontier[T]) Len() int            { return len(pq) }
func (pq pqFrontier[T]) Less(i, j int) bool  { return pq[i].rd < pq[j].rd }
func (pq pqFrontier[T]) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *pqFrontier[T]) Push(x interface{}) { *pq = append(*pq, x.(*frontierItem[T])) }
func (pq *pqFrontier[T]) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return item
}

// BalancedPQ is the points-in-nodes, implicit-layout k-d tree searcher
// using best-first priority-queue descent: the frontier
// always pops the subtree with the smallest lower-bound distance, so
// the search can stop the instant the frontier's minimum exceeds the
// current k-th best, visiting the fewest possible nodes for a given k.
type BalancedPQ[T cloud.Scalar] struct {
	base     *balancedNodesBase[T]
	counters cloud.Counters
}

var _ searcher.Interface[float64] = (*BalancedPQ[float64])(nil)

// NewBalancedPQ builds a BalancedPQ searcher over c.
func NewBalancedPQ[T cloud.Scalar](c *cloud.Cloud[T]) (*BalancedPQ[T], error) {
	if c == nil {
		return nil, fmt.Errorf("kdtree: NewBalancedPQ: %w", cloud.ErrNilMatrix)
	}
	return &BalancedPQ[T]{base: buildBalancedNodes[T](c)}, nil
}

// Knn implements searcher.Interface.
func (s *BalancedPQ[T]) Knn(q []T, k int, eps T, flags searcher.Flags) ([]int, error) {
	c := s.base.cloud
	if err := searcher.ValidateQuery(c.Dims(), k, c.Len(), eps, q); err != nil {
		return nil, err
	}
	allowSelf := flags.Has(searcher.AllowSelfMatch)
	scale := onePlusEpsSquared(eps)

	off0, rd0 := initialOffset(q, c.MinBound(), c.MaxBound())
	h := kdheap.New[T](k)
	var visits uint64

	pq := &pqFrontier[T]{{slot: 0, rd: rd0, off: off0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		top := (*pq)[0]
		if h.Full() && top.rd*scale > h.TopDist() {
			break
		}
		item := heap.Pop(pq).(*frontierItem[T])
		s.visit(c, q, item, h, allowSelf, pq, &visits)
	}

	s.counters.RecordQuery(visits)
	return h.DrainSorted(), nil
}

func (s *BalancedPQ[T]) visit(c *cloud.Cloud[T], q []T, item *frontierItem[T], h *kdheap.Heap[T], allowSelf bool, pq *pqFrontier[T], visits *uint64) {
	if s.isEmpty(item.slot) {
		return
	}
	node := s.base.nodes[item.slot]

	*visits++
	dist := cloud.SquaredDistance(q, c.Point(node.idx))
	if dist != 0 || allowSelf {
		h.TryInsert(dist, node.idx)
	}

	if node.dim == leafDim {
		return
	}

	diff := q[node.dim] - node.cut
	near, far := 2*item.slot+1, 2*item.slot+2
	if diff > 0 {
		near, far = far, near
	}

	if !s.isEmpty(near) {
		heap.Push(pq, &frontierItem[T]{slot: near, rd: item.rd, off: item.off})
	}
	if !s.isEmpty(far) {
		oldOff := item.off[node.dim]
		newOff := diff
		if newOff < 0 {
			newOff = -newOff
		}
		farRd := item.rd - oldOff*oldOff + newOff*newOff
		farOff := append([]T(nil), item.off...)
		farOff[node.dim] = newOff
		heap.Push(pq, &frontierItem[T]{slot: far, rd: farRd, off: farOff})
	}
}

func (s *BalancedPQ[T]) isEmpty(slot int) bool {
	return slot >= len(s.base.nodes) || s.base.nodes[slot].dim == emptySlot
}

// KnnM implements searcher.Interface.
func (s *BalancedPQ[T]) KnnM(q *cloud.Matrix[T], k int, eps T, flags searcher.Flags) ([]int, error) {
	return searcher.DefaultKnnM[T](s.Knn, q, k, eps, flags)
}

// Stats implements searcher.Interface.
func (s *BalancedPQ[T]) Stats() cloud.Statistics { return s.counters.Snapshot() }
