package kdtree

import "github.com/katalvlaran/knnspace/cloud"

// heapCapacity returns the number of slots an implicit (2p+1, 2p+2)
// binary-heap-layout array needs to hold the n nodes of a balanced tree
// built by recursive exact-median splitting: the smallest size of the
// form 2^h-1 that is >= n.
func heapCapacity[T cloud.Scalar](n int) int {
	if n <= 0 {
		return 0
	}
	size := 1
	for size < n {
		size = size*2 + 1
	}
	return size
}

// largestSpreadAxis returns the dimension with the greatest max-min
// spread over idxs, computed in a single pass over min and max rather
// than a full sort. Ties break toward the lower axis number.
func largestSpreadAxis[T cloud.Scalar](c *cloud.Cloud[T], idxs []int) int {
	dims := c.Dims()
	first := c.Point(idxs[0])
	mins := append([]T(nil), first...)
	maxs := append([]T(nil), first...)
	for _, i := range idxs[1:] {
		p := c.Point(i)
		for d := 0; d < dims; d++ {
			if p[d] < mins[d] {
				mins[d] = p[d]
			}
			if p[d] > maxs[d] {
				maxs[d] = p[d]
			}
		}
	}

	best := 0
	var bestSpread T
	for d := 0; d < dims; d++ {
		spread := maxs[d] - mins[d]
		if d == 0 || spread > bestSpread {
			bestSpread = spread
			best = d
		}
	}
	return best
}

// longestAxis returns the dimension of greatest extent in the cell
// [minV, maxV], ties breaking toward the lower axis number. Used by the
// sliding-midpoint builders, which already carry the cell bounds from
// the parent call rather than rescanning points.
func longestAxis[T cloud.Scalar](minV, maxV []T) int {
	best := 0
	var bestLen T
	for d := range minV {
		length := maxV[d] - minV[d]
		if d == 0 || length > bestLen {
			bestLen = length
			best = d
		}
	}
	return best
}

// nthElementByAxis reorders idxs in place via quickselect (Hoare
// partitioning) so that, after the call, the point at position target
// is the one that would occupy that position were idxs fully sorted by
// coordinate dim, every earlier position holds a coordinate <= it, and
// every later position holds a coordinate >= it: a partial sort over a
// working array of point indices, used instead of a full sort so the
// median split costs O(n) rather than O(n log n).
func nthElementByAxis[T cloud.Scalar](c *cloud.Cloud[T], idxs []int, target, dim int) {
	lo, hi := 0, len(idxs)-1
	for lo < hi {
		p := hoarePartition(c, idxs, lo, hi, dim)
		switch {
		case target <= p:
			hi = p
		default:
			lo = p + 1
		}
	}
}

func hoarePartition[T cloud.Scalar](c *cloud.Cloud[T], idxs []int, lo, hi, dim int) int {
	pivot := c.Point(idxs[(lo+hi)/2])[dim]
	i, j := lo-1, hi+1
	for {
		for {
			i++
			if c.Point(idxs[i])[dim] >= pivot {
				break
			}
		}
		for {
			j--
			if c.Point(idxs[j])[dim] <= pivot {
				break
			}
		}
		if i >= j {
			return j
		}
		idxs[i], idxs[j] = idxs[j], idxs[i]
	}
}

// slidingMidpointSplit implements the ANN_KD_SL_MIDPT rule (as in the
// ANN library): split on the longest side of the inherited cell at its
// midpoint, then slide the cut to the extremum of whichever side would
// otherwise be empty so at least one point is isolated there. idxs is
// partitioned (not mutated in place; two new slices are returned) into
// left (coordinate <= cut) and right (coordinate >= cut) along the
// chosen axis.
func slidingMidpointSplit[T cloud.Scalar](c *cloud.Cloud[T], idxs []int, minV, maxV []T) (axis int, cut T, left, right []int) {
	axis = longestAxis(minV, maxV)
	mid := (minV[axis] + maxV[axis]) / 2

	left = make([]int, 0, len(idxs))
	right = make([]int, 0, len(idxs))
	for _, i := range idxs {
		if c.Point(i)[axis] <= mid {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	cut = mid

	switch {
	case len(right) == 0:
		// Every point is at or below the cell midpoint: slide the cut
		// down to the maximal point's coordinate so it alone moves right.
		maxAt, maxVal := 0, c.Point(left[0])[axis]
		for j, i := range left {
			if v := c.Point(i)[axis]; v > maxVal {
				maxVal, maxAt = v, j
			}
		}
		cut = maxVal
		right = []int{left[maxAt]}
		left = removeAt(left, maxAt)
	case len(left) == 0:
		// Every point is above the cell midpoint: slide the cut up to
		// the minimal point's coordinate so it alone moves left.
		minAt, minVal := 0, c.Point(right[0])[axis]
		for j, i := range right {
			if v := c.Point(i)[axis]; v < minVal {
				minVal, minAt = v, j
			}
		}
		cut = minVal
		left = []int{right[minAt]}
		right = removeAt(right, minAt)
	}

	if len(left) == 0 || len(right) == 0 {
		// Every point coincides along axis even after sliding (a fully
		// degenerate, duplicate-coordinate cell): fall back to a
		// positional split so the recursion still terminates.
		all := append(append([]int(nil), left...), right...)
		half := len(all) / 2
		left, right = all[:half], all[half:]
	}
	return axis, cut, left, right
}

func removeAt(s []int, i int) []int {
	out := make([]int, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...)
}
