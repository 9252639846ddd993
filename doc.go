// Package knnspace is a library for exact and ε-approximate k-nearest-
// neighbour search over static point clouds in low- to moderate-
// dimensional Euclidean space.
//
// 🚀 What is knnspace?
//
//	A focused, allocation-conscious library that brings together:
//
//	  • cloud/      — immutable D×N column-major point clouds + bounds
//	  • kdheap/      — fixed-capacity bounded candidate heap
//	  • bruteforce/  — linear-scan oracle searcher
//	  • kdtree/      — five k-d tree variants (six searchers) trading
//	                   balance, node layout, and bound representation
//	                   against build and query cost
//
// ✨ Why choose knnspace?
//
//   - Exact by default     — ε=0 always returns the true k nearest points
//   - Approximate when asked — ε>0 trades accuracy for fewer visits,
//     with a provable (1+ε)² bound on returned distances
//   - Read-only after build — every searcher is safe for concurrent
//     queries once constructed, no locks needed
//   - Generic over scalar type — instantiate at float32 or float64
//
// A client supplies a fixed set of N points in D dimensions; a searcher
// is built once and thereafter answers "return the k indices of the
// cloud points closest to query q" queries, optionally within an
// ε-approximation factor, optionally allowing a zero-distance self-match.
//
// Dive into each subpackage's doc comment for build and query details,
// complexity notes, and worked examples.
//
//	go get github.com/katalvlaran/knnspace
package knnspace
