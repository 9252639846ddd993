package kdtree

import "github.com/katalvlaran/knnspace/cloud"

// onePlusEpsSquared returns (1+eps)^2, the scale factor applied to a
// subtree's lower-bound distance before comparing it against the
// current k-th best distance: a candidate subtree is pruned once its
// lower-bound distance, scaled by this factor, exceeds the current
// k-th best distance — equivalently, the k-th best radius shrinks by
// 1/(1+eps)^2 for pruning purposes. eps == 0 yields exact search
// (factor 1, no change to the prune threshold).
func onePlusEpsSquared[T cloud.Scalar](eps T) T {
	onePlusEps := 1 + eps
	return onePlusEps * onePlusEps
}
