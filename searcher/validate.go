package searcher

import (
	"fmt"

	"github.com/katalvlaran/knnspace/cloud"
)

// ValidateQuery checks the query-time failure conditions: wrong-length
// query, k out of [1, n], and negative ε. A query fails synchronously
// and leaves the searcher's state untouched; callers must not advance
// their visit counters when this returns an error.
func ValidateQuery[T cloud.Scalar](dims, k, n int, eps T, q []T) error {
	if len(q) != dims {
		return fmt.Errorf("searcher: query has %d dims, want %d: %w", len(q), dims, ErrQueryDimMismatch)
	}
	if k < 1 {
		return fmt.Errorf("searcher: k=%d: %w", k, ErrInvalidK)
	}
	if k > n {
		return fmt.Errorf("searcher: k=%d exceeds cloud size %d: %w", k, n, ErrKExceedsN)
	}
	if eps < 0 {
		return fmt.Errorf("searcher: eps=%v: %w", eps, ErrInvalidEpsilon)
	}
	return nil
}
