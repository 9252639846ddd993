package kdtree

// Sentinel node-slot markers shared across the balanced variants' flat,
// implicit-heap-layout node arrays.
const (
	// leafDim marks a node holding a single cloud point with no split
	// (a leaf in the points-in-nodes layout, or a points-in-leaves leaf
	// decoded separately — see leafIndexBias below).
	leafDim = -1

	// emptySlot marks a position in the implicit-heap array that no
	// subtree occupies.
	emptySlot = -2

	// leafIndexBias encodes a points-in-leaves cloud index i as
	// leafIndexBias-i, so dim <= leafIndexBias unambiguously marks a
	// leaf even when i == 0, and that range never collides with
	// emptySlot. Decode with: i = leafIndexBias - dim... see
	// leaves_stack.go for the exact encode/decode pair.
	leafIndexBias = -3
)

// invalidChild marks "no right child" on a leaf in the unbalanced,
// explicit-rightChild node layouts (§3's "sentinel INVALID_CHILD").
const invalidChild = -1
