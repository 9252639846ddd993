package cloud_test

import (
	"testing"

	"github.com/katalvlaran/knnspace/cloud"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewMatrix_DataLengthMismatch ensures a mismatched flat slice length
// is rejected with ErrDataLengthMismatch.
func TestNewMatrix_DataLengthMismatch(t *testing.T) {
	_, err := cloud.NewMatrix[float64](2, 3, []float64{0, 1, 2, 3})
	assert.ErrorIs(t, err, cloud.ErrDataLengthMismatch)
}

// TestNewMatrix_ZeroDims ensures dims <= 0 is rejected.
func TestNewMatrix_ZeroDims(t *testing.T) {
	_, err := cloud.NewMatrix[float64](0, 1, nil)
	assert.ErrorIs(t, err, cloud.ErrZeroDims)
}

// TestNewCloud_EmptyPoints ensures zero columns is a construction error.
func TestNewCloud_EmptyPoints(t *testing.T) {
	m, err := cloud.NewMatrix[float64](2, 0, nil)
	require.NoError(t, err)

	_, err = cloud.NewCloud(m)
	assert.ErrorIs(t, err, cloud.ErrEmptyCloud)
}

// TestCloud_Bounds verifies the bounding box is the component-wise
// min/max over every column, per spec's data-model invariant.
func TestCloud_Bounds(t *testing.T) {
	// columns: (0,0) (1,0) (0,1) (1,1) (2,2)
	data := []float64{0, 0, 1, 0, 0, 1, 1, 1, 2, 2}
	m, err := cloud.NewMatrix[float64](2, 5, data)
	require.NoError(t, err)

	c, err := cloud.NewCloud(m)
	require.NoError(t, err)

	assert.Equal(t, 2, c.Dims())
	assert.Equal(t, 5, c.Len())
	assert.Equal(t, []float64{0, 0}, c.MinBound())
	assert.Equal(t, []float64{2, 2}, c.MaxBound())

	for i := 0; i < c.Len(); i++ {
		p := c.Point(i)
		for d := 0; d < c.Dims(); d++ {
			assert.GreaterOrEqual(t, p[d], c.MinBound()[d])
			assert.LessOrEqual(t, p[d], c.MaxBound()[d])
		}
	}
}

// TestSquaredDistance_Basic checks the squared-Euclidean contract: never
// a square root, always the sum of squared per-axis differences.
func TestSquaredDistance_Basic(t *testing.T) {
	a := []float64{0, 0}
	b := []float64{3, 4}
	assert.Equal(t, 25.0, cloud.SquaredDistance(a, b))
}

// TestCounters_RecordQuery verifies the visit-monotonicity invariant:
// total after = total before + lastQuery of that query.
func TestCounters_RecordQuery(t *testing.T) {
	var c cloud.Counters

	c.RecordQuery(5)
	s := c.Snapshot()
	assert.EqualValues(t, 5, s.LastQueryVisitCount)
	assert.EqualValues(t, 5, s.TotalVisitCount)

	c.RecordQuery(3)
	s = c.Snapshot()
	assert.EqualValues(t, 3, s.LastQueryVisitCount)
	assert.EqualValues(t, 8, s.TotalVisitCount)
}
