package searcher

import "github.com/katalvlaran/knnspace/cloud"

// KnnFunc is the shape of a searcher's single-query Knn method; it is
// the building block DefaultKnnM composes over a query matrix's columns.
type KnnFunc[T cloud.Scalar] func(q []T, k int, eps T, flags Flags) ([]int, error)

// DefaultKnnM runs knn once per column of q and concatenates the
// resulting k-index blocks, in column order, producing a flat k*M
// slice. Every searcher in this module uses it unchanged, since none
// of the five k-d tree variants amortise work across columns of a
// batch.
func DefaultKnnM[T cloud.Scalar](knn KnnFunc[T], q *cloud.Matrix[T], k int, eps T, flags Flags) ([]int, error) {
	m := q.Cols()
	out := make([]int, 0, k*m)
	for col := 0; col < m; col++ {
		res, err := knn(q.Col(col), k, eps, flags)
		if err != nil {
			return nil, err
		}
		out = append(out, res...)
	}
	return out, nil
}
