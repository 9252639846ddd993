package cloud

import "fmt"

// Cloud is an immutable reference to a point set: a Matrix plus the
// per-dimension min/max bounds computed once over every column.
//
// Invariant: for every point i and dimension d,
// minBound[d] <= points.Col(i)[d] <= maxBound[d].
type Cloud[T Scalar] struct {
	points   *Matrix[T]
	minBound []T
	maxBound []T
}

// NewCloud builds a Cloud from points, computing the axis-aligned
// bounding box in one O(N*D) pass.
//
// Errors:
//   - ErrNilMatrix if points == nil.
//   - ErrZeroDims if points.Dims() <= 0.
//   - ErrEmptyCloud if points.Cols() <= 0.
func NewCloud[T Scalar](points *Matrix[T]) (*Cloud[T], error) {
	if points == nil {
		return nil, fmt.Errorf("cloud: NewCloud: %w", ErrNilMatrix)
	}
	if points.Dims() <= 0 {
		return nil, fmt.Errorf("cloud: NewCloud: %w", ErrZeroDims)
	}
	if points.Cols() <= 0 {
		return nil, fmt.Errorf("cloud: NewCloud: %w", ErrEmptyCloud)
	}

	dims := points.Dims()
	minB := append([]T(nil), points.Col(0)...)
	maxB := append([]T(nil), points.Col(0)...)
	for i := 1; i < points.Cols(); i++ {
		p := points.Col(i)
		for d := 0; d < dims; d++ {
			if p[d] < minB[d] {
				minB[d] = p[d]
			}
			if p[d] > maxB[d] {
				maxB[d] = p[d]
			}
		}
	}

	return &Cloud[T]{points: points, minBound: minB, maxBound: maxB}, nil
}

// Dims reports D.
func (c *Cloud[T]) Dims() int { return c.points.Dims() }

// Len reports N, the number of points in the cloud.
func (c *Cloud[T]) Len() int { return c.points.Cols() }

// Point returns cloud point i as a D-length slice sharing the
// underlying Matrix's backing array (see Matrix.Col).
func (c *Cloud[T]) Point(i int) []T { return c.points.Col(i) }

// MinBound returns the per-dimension minimum over every point. The
// returned slice must not be mutated by the caller.
func (c *Cloud[T]) MinBound() []T { return c.minBound }

// MaxBound returns the per-dimension maximum over every point. The
// returned slice must not be mutated by the caller.
func (c *Cloud[T]) MaxBound() []T { return c.maxBound }

// SquaredDistance returns the squared Euclidean distance between two
// D-length vectors. knnspace never takes a square root: every distance
// compared, pruned, or returned throughout the library is squared.
func SquaredDistance[T Scalar](a, b []T) T {
	var sum T
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
