package cloud

import "sync/atomic"

// Statistics is a point-in-time snapshot of a searcher's visit
// counters. It is returned by value so callers cannot mutate the
// internal counters through it.
type Statistics struct {
	// LastQueryVisitCount is the number of node/leaf visits made by the
	// most recently completed query. Last-writer-wins under concurrent
	// queries: it reflects whichever query finished last, not necessarily
	// the one issued last.
	LastQueryVisitCount uint64

	// TotalVisitCount is the cumulative visit count across every
	// completed query since the searcher was built.
	TotalVisitCount uint64
}

// Counters is the atomic storage a searcher embeds to back its
// Statistics. Updates use relaxed atomics; no ordering is promised
// between LastQueryVisitCount and TotalVisitCount beyond what
// RecordQuery itself performs, matching the "no read-modify-write
// consistency between the two counters" contract.
type Counters struct {
	lastQuery uint64
	total     uint64
}

// RecordQuery folds the visit count of one completed query into the
// counters: total accumulates, lastQuery is overwritten. Callers must
// not call this for a query that failed validation (failed queries do
// not advance the counters).
func (c *Counters) RecordQuery(visits uint64) {
	atomic.AddUint64(&c.total, visits)
	atomic.StoreUint64(&c.lastQuery, visits)
}

// Snapshot reads both counters with relaxed atomic loads.
func (c *Counters) Snapshot() Statistics {
	return Statistics{
		LastQueryVisitCount: atomic.LoadUint64(&c.lastQuery),
		TotalVisitCount:     atomic.LoadUint64(&c.total),
	}
}
