package cloud_test

import (
	"fmt"

	"github.com/katalvlaran/knnspace/cloud"
)

// ExampleNewCloud builds a five-point cloud in 2-D and reports its
// bounding box.
func ExampleNewCloud() {
	// columns: (0,0) (1,0) (0,1) (1,1) (2,2)
	data := []float64{0, 0, 1, 0, 0, 1, 1, 1, 2, 2}
	m, err := cloud.NewMatrix[float64](2, 5, data)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	c, err := cloud.NewCloud(m)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Printf("N=%d D=%d min=%v max=%v\n", c.Len(), c.Dims(), c.MinBound(), c.MaxBound())
	// Output: N=5 D=2 min=[0 0] max=[2 2]
}
