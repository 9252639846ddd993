package kdtree

import "github.com/katalvlaran/knnspace/cloud"

// nodeBN is one slot of the implicit (2p+1, 2p+2) binary-heap-layout,
// points-in-nodes node array shared by BalancedPQ and BalancedStack.
// dim == emptySlot marks a slot past the tree's
// actual shape; dim == leafDim marks an occupied leaf (a single point,
// no split); any other dim is an internal node's split axis.
type nodeBN[T cloud.Scalar] struct {
	dim int
	cut T
	idx int
}

// balancedNodesBase is the build product shared by BalancedPQ and
// BalancedStack: one exact-median recursive split over the whole
// cloud, stored in an implicit array so neither variant needs to store
// child pointers.
type balancedNodesBase[T cloud.Scalar] struct {
	cloud *cloud.Cloud[T]
	nodes []nodeBN[T]
}

// buildBalancedNodes constructs the shared node array for every index
// in c by recursive exact-median splitting on the axis of largest
// spread, writing each point into its slot in prefix (heap) order.
func buildBalancedNodes[T cloud.Scalar](c *cloud.Cloud[T]) *balancedNodesBase[T] {
	n := c.Len()
	nodes := make([]nodeBN[T], heapCapacity[T](n))
	for i := range nodes {
		nodes[i].dim = emptySlot
	}

	idxs := make([]int, n)
	for i := range idxs {
		idxs[i] = i
	}
	fillBalancedNodes(c, nodes, 0, idxs)

	return &balancedNodesBase[T]{cloud: c, nodes: nodes}
}

// fillBalancedNodes recursively fills slot and its descendants with
// idxs, picking the point nearest the exact median along the axis of
// largest spread as the slot occupant and recursing on the two halves.
func fillBalancedNodes[T cloud.Scalar](c *cloud.Cloud[T], nodes []nodeBN[T], slot int, idxs []int) {
	if len(idxs) == 0 {
		return
	}
	if len(idxs) == 1 {
		nodes[slot] = nodeBN[T]{dim: leafDim, idx: idxs[0]}
		return
	}

	axis := largestSpreadAxis[T](c, idxs)
	mid := len(idxs) / 2
	nthElementByAxis[T](c, idxs, mid, axis)

	nodes[slot] = nodeBN[T]{
		dim: axis,
		cut: c.Point(idxs[mid])[axis],
		idx: idxs[mid],
	}

	fillBalancedNodes(c, nodes, 2*slot+1, idxs[:mid])
	fillBalancedNodes(c, nodes, 2*slot+2, idxs[mid+1:])
}
