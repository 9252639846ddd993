// Package cloud defines the immutable point-cloud view that every
// knnspace searcher is built over: a D×N column-major matrix of
// scalars, its precomputed axis-aligned bounding box, and the
// atomic visit-statistics counters every searcher exposes.
//
// A Cloud never copies the caller's data and is never mutated after
// construction; callers guarantee the backing Matrix outlives every
// searcher built over it. Concurrent reads (queries) are always safe.
package cloud
