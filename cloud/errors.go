package cloud

import "errors"

// Sentinel errors returned by Matrix and Cloud construction.
var (
	// ErrZeroDims indicates a matrix or cloud was built with dims <= 0.
	ErrZeroDims = errors.New("cloud: dimensionality must be >= 1")

	// ErrEmptyCloud indicates a cloud was built from zero columns.
	ErrEmptyCloud = errors.New("cloud: must have at least one point")

	// ErrDataLengthMismatch indicates the backing slice's length does not
	// equal dims*cols.
	ErrDataLengthMismatch = errors.New("cloud: data length does not match dims*cols")

	// ErrNilMatrix indicates a nil *Matrix was passed where a built matrix
	// was required.
	ErrNilMatrix = errors.New("cloud: matrix is nil")
)
