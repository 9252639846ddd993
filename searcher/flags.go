package searcher

// Flags is a bit mask of query options.
type Flags uint32

const (
	// AllowSelfMatch permits a cloud point at distance exactly zero from
	// the query to be returned. Unset, every zero-distance candidate is
	// skipped — not just the first one encountered — the pinned policy
	// for coincident points.
	AllowSelfMatch Flags = 1 << iota

	// SortResults requests ascending-by-squared-distance ordering of the
	// returned indices. Every searcher in this module in fact always
	// drains its bounded heap in sorted order (kdheap.Heap.DrainSorted),
	// so this flag has no effect on the result itself; it exists to keep
	// the bit position stable and documents that unset order ("unspecified
	// but stable") happens to coincide with sorted order here.
	SortResults
)

const knownFlags = AllowSelfMatch | SortResults

// Has reports whether bit is set in f.
func (f Flags) Has(bit Flags) bool { return f&bit != 0 }

// Masked clears any bits this module does not recognise. Unrecognised
// bits are ignored rather than erroring, so future flags can be added
// without breaking existing callers that pass a stale mask.
func (f Flags) Masked() Flags { return f & knownFlags }
