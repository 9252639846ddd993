// Package bruteforce implements the linear-scan k-NN searcher used as
// the correctness oracle every k-d tree variant is tested against: it
// visits every cloud column once, so its result is exact by
// construction — there is no tree to get wrong.
package bruteforce
