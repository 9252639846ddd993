package cloud

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Scalar is the numeric type every knnspace type parametrises over.
// Instantiate at float32 or float64; squared distances, bounds, and
// heap keys all share this constraint.
type Scalar interface {
	constraints.Float
}

// Matrix is a D-by-N column-major buffer of scalars: column i occupies
// data[i*dims : (i+1)*dims]. This layout is required so that a column
// can be dereferenced as a single contiguous D-long run (the cache-line
// locality the optimised unbalanced searcher in package kdtree relies
// on).
type Matrix[T Scalar] struct {
	dims int
	cols int
	data []T
}

// NewMatrix builds a Matrix from a flat, column-major data slice.
// data is referenced, not copied; the caller must not mutate it while
// the Matrix (or any Cloud/searcher built from it) is in use.
//
// Errors:
//   - ErrZeroDims if dims <= 0.
//   - ErrDataLengthMismatch if len(data) != dims*cols.
func NewMatrix[T Scalar](dims, cols int, data []T) (*Matrix[T], error) {
	if dims <= 0 {
		return nil, fmt.Errorf("cloud: NewMatrix(dims=%d): %w", dims, ErrZeroDims)
	}
	if cols < 0 || len(data) != dims*cols {
		return nil, fmt.Errorf("cloud: NewMatrix: data has %d scalars, want %d (%d x %d): %w", len(data), dims*cols, dims, cols, ErrDataLengthMismatch)
	}
	return &Matrix[T]{dims: dims, cols: cols, data: data}, nil
}

// Dims reports the row count D.
func (m *Matrix[T]) Dims() int { return m.dims }

// Cols reports the column count.
func (m *Matrix[T]) Cols() int { return m.cols }

// Col returns column i as a D-length slice sharing the Matrix's backing
// array. Callers must not retain the slice past the Matrix's lifetime
// nor write through it; a query vector is always obtained this way,
// never copied, so this is the hot path for every searcher's inner loop.
func (m *Matrix[T]) Col(i int) []T {
	return m.data[i*m.dims : (i+1)*m.dims]
}
