// Package kdheap implements the bounded index heap used by every
// knnspace searcher to track the current k best candidates during a
// search: a fixed-capacity max-heap of (squared distance, cloud index)
// pairs, where the root is always the worst kept candidate so a single
// comparison decides whether a new candidate is worth inserting.
//
// Heap is hand-rolled array-based sift-up/down rather than built on
// container/heap: it sits in the per-query hot path where allocations
// must stay minimal, and satisfying container/heap.Interface with a
// generic element type would box each Push/Pop through an interface
// conversion. The priority-queue frontier
// used by the balanced points-in-nodes searcher (package kdtree) is a
// different, less allocation-sensitive heap and does use container/heap.
package kdheap
