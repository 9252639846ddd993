package searcher

import "errors"

// Sentinel errors returned by ValidateQuery.
var (
	// ErrQueryDimMismatch indicates the query vector's length differs
	// from the cloud's dimensionality.
	ErrQueryDimMismatch = errors.New("searcher: query dimension mismatch")

	// ErrInvalidK indicates k < 1.
	ErrInvalidK = errors.New("searcher: k must be >= 1")

	// ErrKExceedsN indicates k is larger than the cloud's point count.
	ErrKExceedsN = errors.New("searcher: k exceeds cloud size")

	// ErrInvalidEpsilon indicates a negative approximation factor.
	ErrInvalidEpsilon = errors.New("searcher: epsilon must be >= 0")
)
