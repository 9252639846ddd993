package kdtree

import (
	"fmt"

	"github.com/katalvlaran/knnspace/cloud"
	"github.com/katalvlaran/knnspace/kdheap"
	"github.com/katalvlaran/knnspace/searcher"
)

// nodeBL is one slot of BalancedLeaves's implicit (2p+1, 2p+2),
// points-in-leaves node array: internal nodes carry a split
// axis and cut value only, never a point; leaves carry no split, only
// an encoded cloud index. dim <= leafIndexBias marks a leaf, decoded
// as idx = leafIndexBias - dim; any other dim is an internal split
// axis. emptySlot sits strictly above leafIndexBias so it can never
// collide with an encoded leaf index (see constants.go).
type nodeBL[T cloud.Scalar] struct {
	dim int
	cut T
}

func encodeLeafBL(idx int) int { return leafIndexBias - idx }
func decodeLeafBL(dim int) int { return leafIndexBias - dim }
func isLeafBL(dim int) bool    { return dim <= leafIndexBias }
func isEmptyBL(dim int) bool   { return dim == emptySlot }

// LeavesOption configures BalancedLeaves construction.
type LeavesOption func(*leavesConfig)

type leavesConfig struct {
	useVariance bool
}

// WithBalanceVariance selects the split axis by greatest per-axis
// sample variance instead of the default max-min spread, trading one
// extra pass over each partition for reduced sensitivity to a single
// outlying point skewing the spread-based choice.
func WithBalanceVariance() LeavesOption {
	return func(cfg *leavesConfig) { cfg.useVariance = true }
}

// BalancedLeaves is the points-in-leaves, implicit-layout k-d tree
// searcher: every cloud point lives in a leaf slot, and
// internal slots hold only a split axis and cut value, halving the
// per-internal-node footprint points-in-nodes layouts pay.
type BalancedLeaves[T cloud.Scalar] struct {
	cloud    *cloud.Cloud[T]
	nodes    []nodeBL[T]
	counters cloud.Counters
}

var _ searcher.Interface[float64] = (*BalancedLeaves[float64])(nil)

// NewBalancedLeaves builds a BalancedLeaves searcher over c.
func NewBalancedLeaves[T cloud.Scalar](c *cloud.Cloud[T], opts ...LeavesOption) (*BalancedLeaves[T], error) {
	if c == nil {
		return nil, fmt.Errorf("kdtree: NewBalancedLeaves: %w", cloud.ErrNilMatrix)
	}
	cfg := leavesConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	n := c.Len()
	// n leaves plus n-1 internal nodes.
	nodes := make([]nodeBL[T], heapCapacity[T](2*n-1))
	for i := range nodes {
		nodes[i].dim = emptySlot
	}

	idxs := make([]int, n)
	for i := range idxs {
		idxs[i] = i
	}
	fillBalancedLeaves(c, nodes, 0, idxs, cfg.useVariance)

	return &BalancedLeaves[T]{cloud: c, nodes: nodes}, nil
}

func fillBalancedLeaves[T cloud.Scalar](c *cloud.Cloud[T], nodes []nodeBL[T], slot int, idxs []int, useVariance bool) {
	if len(idxs) == 0 {
		return
	}
	if len(idxs) == 1 {
		nodes[slot] = nodeBL[T]{dim: encodeLeafBL(idxs[0])}
		return
	}

	var axis int
	if useVariance {
		axis = largestVarianceAxis[T](c, idxs)
	} else {
		axis = largestSpreadAxis[T](c, idxs)
	}
	mid := len(idxs) / 2
	nthElementByAxis[T](c, idxs, mid, axis)

	nodes[slot] = nodeBL[T]{dim: axis, cut: c.Point(idxs[mid])[axis]}

	fillBalancedLeaves(c, nodes, 2*slot+1, idxs[:mid], useVariance)
	fillBalancedLeaves(c, nodes, 2*slot+2, idxs[mid:], useVariance)
}

// largestVarianceAxis returns the dimension of greatest sample variance
// over idxs, the axis-selection rule WithBalanceVariance enables.
func largestVarianceAxis[T cloud.Scalar](c *cloud.Cloud[T], idxs []int) int {
	dims := c.Dims()
	n := T(len(idxs))
	mean := make([]T, dims)
	for _, i := range idxs {
		p := c.Point(i)
		for d := 0; d < dims; d++ {
			mean[d] += p[d]
		}
	}
	for d := 0; d < dims; d++ {
		mean[d] /= n
	}

	variance := make([]T, dims)
	for _, i := range idxs {
		p := c.Point(i)
		for d := 0; d < dims; d++ {
			diff := p[d] - mean[d]
			variance[d] += diff * diff
		}
	}

	best := 0
	for d := 1; d < dims; d++ {
		if variance[d] > variance[best] {
			best = d
		}
	}
	return best
}

type leavesWalk[T cloud.Scalar] struct {
	s         *BalancedLeaves[T]
	q         []T
	h         *kdheap.Heap[T]
	allowSelf bool
	scale     T
	off       []T
	visits    uint64
}

// Knn implements searcher.Interface.
func (s *BalancedLeaves[T]) Knn(q []T, k int, eps T, flags searcher.Flags) ([]int, error) {
	if err := searcher.ValidateQuery(s.cloud.Dims(), k, s.cloud.Len(), eps, q); err != nil {
		return nil, err
	}

	off, rd := initialOffset(q, s.cloud.MinBound(), s.cloud.MaxBound())
	w := &leavesWalk[T]{
		s:         s,
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

func (w *leavesWalk[T]) descend(slot int, rd T) {
	if slot >= len(w.s.nodes) || isEmptyBL(w.s.nodes[slot].dim) {
		return
	}
	if w.h.Full() && rd*w.scale > w.h.TopDist() {
		return
	}

	node := w.s.nodes[slot]
	if isLeafBL(node.dim) {
		idx := decodeLeafBL(node.dim)
		w.visits++
		dist := cloud.SquaredDistance(w.q, w.s.cloud.Point(idx))
		if dist != 0 || w.allowSelf {
			w.h.TryInsert(dist, idx)
		}
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
func (s *BalancedLeaves[T]) KnnM(q *cloud.Matrix[T], k int, eps T, flags searcher.Flags) ([]int, error) {
	return searcher.DefaultKnnM[T](s.Knn, q, k, eps, flags)
}

// Stats implements searcher.Interface.
func (s *BalancedLeaves[T]) Stats() cloud.Statistics { return s.counters.Snapshot() }
