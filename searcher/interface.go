package searcher

import "github.com/katalvlaran/knnspace/cloud"

// Interface is the capability set every knnspace searcher implements:
// single-query and batched k-NN search plus a statistics snapshot. Each
// variant (package bruteforce, package kdtree) realises this as a
// distinct concrete type selected at construction time rather than
// through a shared base class, so the inner search loop never pays for
// virtual dispatch.
type Interface[T cloud.Scalar] interface {
	// Knn returns the k cloud indices nearest to q (squared Euclidean),
	// honouring eps and flags.
	Knn(q []T, k int, eps T, flags Flags) ([]int, error)

	// KnnM runs Knn once per column of q and concatenates the k-index
	// blocks, producing a flat k*M slice.
	KnnM(q *cloud.Matrix[T], k int, eps T, flags Flags) ([]int, error)

	// Stats returns a snapshot of the searcher's visit counters.
	Stats() cloud.Statistics
}
