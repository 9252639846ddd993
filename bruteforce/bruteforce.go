package bruteforce

import (
	"fmt"

	"github.com/katalvlaran/knnspace/cloud"
	"github.com/katalvlaran/knnspace/kdheap"
	"github.com/katalvlaran/knnspace/searcher"
)

// Searcher is the brute-force k-NN oracle: knn(q, k) scans every column
// of the cloud, computing squared distance and feeding a capacity-k
// bounded heap. No pruning, no index structure — it exists to be
// obviously correct, not fast.
//
// Complexity: Time O(N) per query, Space O(k).
type Searcher[T cloud.Scalar] struct {
	cloud    *cloud.Cloud[T]
	counters cloud.Counters
}

// New builds a brute-force searcher over c. Construction never fails
// once c is itself a valid non-nil Cloud (cloud.NewCloud already
// enforces non-empty, non-zero-dimensional clouds); c == nil is the one
// remaining invalid-construction condition this constructor rejects.
func New[T cloud.Scalar](c *cloud.Cloud[T]) (*Searcher[T], error) {
	if c == nil {
		return nil, fmt.Errorf("bruteforce: New: %w", cloud.ErrNilMatrix)
	}
	return &Searcher[T]{cloud: c}, nil
}

// Knn implements searcher.Interface.
func (s *Searcher[T]) Knn(q []T, k int, eps T, flags searcher.Flags) ([]int, error) {
	if err := searcher.ValidateQuery(s.cloud.Dims(), k, s.cloud.Len(), eps, q); err != nil {
		return nil, err
	}

	allowSelf := flags.Has(searcher.AllowSelfMatch)
	h := kdheap.New[T](k)
	var visits uint64
	for i := 0; i < s.cloud.Len(); i++ {
		dist := cloud.SquaredDistance(q, s.cloud.Point(i))
		visits++
		if dist == 0 && !allowSelf {
			continue
		}
		h.TryInsert(dist, i)
	}
	s.counters.RecordQuery(visits)

	return h.DrainSorted(), nil
}

// KnnM implements searcher.Interface via the shared default strategy.
func (s *Searcher[T]) KnnM(q *cloud.Matrix[T], k int, eps T, flags searcher.Flags) ([]int, error) {
	return searcher.DefaultKnnM[T](s.Knn, q, k, eps, flags)
}

// Stats implements searcher.Interface.
func (s *Searcher[T]) Stats() cloud.Statistics { return s.counters.Snapshot() }
