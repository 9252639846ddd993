// Package searcher defines the common search interface every knnspace
// searcher (package bruteforce, package kdtree) implements, the Flags
// option bitmask, shared query validation, and the default batched-query
// strategy.
package searcher
