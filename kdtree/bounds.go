package kdtree

import "github.com/katalvlaran/knnspace/cloud"

// initialOffset returns the per-dimension offset vector and its squared
// norm for a query point q against a bounding box [minV, maxV]: the
// starting state of the incremental-offset distance-bound trick, before
// any descent step has updated it.
func initialOffset[T cloud.Scalar](q, minV, maxV []T) (off []T, rd T) {
	off = make([]T, len(q))
	for d := range q {
		switch {
		case q[d] < minV[d]:
			off[d] = minV[d] - q[d]
		case q[d] > maxV[d]:
			off[d] = q[d] - maxV[d]
		default:
			off[d] = 0
		}
		rd += off[d] * off[d]
	}
	return off, rd
}
