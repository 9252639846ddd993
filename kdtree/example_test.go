package kdtree_test

import (
	"fmt"

	"github.com/katalvlaran/knnspace/cloud"
	"github.com/katalvlaran/knnspace/kdtree"
)

// ExampleBalancedPQ runs the priority-queue balanced searcher over a
// small worked five-point cloud.
func ExampleBalancedPQ() {
	data := []float64{0, 0, 1, 0, 0, 1, 1, 1, 2, 2}
	m, _ := cloud.NewMatrix[float64](2, 5, data)
	c, _ := cloud.NewCloud(m)

	s, _ := kdtree.NewBalancedPQ(c)
	idxs, _ := s.Knn([]float64{0.1, 0.1}, 1, 0, 0)
	fmt.Println(idxs)
	// Output: [0]
}

// ExampleUnbalancedExplicit shows the sliding-midpoint-split variant
// answering the same query.
func ExampleUnbalancedExplicit() {
	data := []float64{0, 0, 1, 0, 0, 1, 1, 1, 2, 2}
	m, _ := cloud.NewMatrix[float64](2, 5, data)
	c, _ := cloud.NewCloud(m)

	s, _ := kdtree.NewUnbalancedExplicit(c)
	idxs, _ := s.Knn([]float64{0.1, 0.1}, 1, 0, 0)
	fmt.Println(idxs)
	// Output: [0]
}
