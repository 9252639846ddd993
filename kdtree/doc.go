// Package kdtree implements five k-d tree index variants, each a
// distinct trade-off along three axes — balanced (median split) vs.
// unbalanced (sliding-midpoint split), points-in-nodes vs. points-in-leaves, and implicit vs.
// explicit per-node bounds:
//
//   - BalancedPQ / BalancedStack — points-in-nodes, implicit (binary-
//     heap) child layout, one shared build, two search strategies:
//     priority-queue best-first descent and classical near-child-first
//     stack descent with an incremental offset vector.
//   - BalancedLeaves — points-in-leaves, implicit child layout, stack
//     descent.
//   - UnbalancedImplicit — points-in-leaves, sliding-midpoint build,
//     explicit rightChild index, implicit (re-derived) cell bounds,
//     stack descent with the incremental offset vector.
//   - UnbalancedImplicitOptimized — the same algorithm with a
//     cache-friendlier leaf representation and a self-match split
//     chosen once per call.
//   - UnbalancedExplicit — the same build, but every internal node
//     additionally stores its own cell's low/high bound along its
//     split dimension, so search needs no offset vector at all.
//
// Every type implements searcher.Interface. All six share the bounded
// heap from package kdheap, the cloud view from package cloud, and the
// ε/self-match/sort semantics of package searcher.
package kdtree
