package search

import (
	"github.com/ThenerzZ/chess-engine-go/internal/chess"
	"github.com/ThenerzZ/chess-engine-go/internal/eval"
)

// Bound classifies how trustworthy a cached score is.
type Bound uint8

const (
	// BoundExact means the stored score is the true value of the node.
	BoundExact Bound = iota
	// BoundLower means the true score is at least the stored score.
	BoundLower
	// BoundUpper means the true score is at most the stored score.
	BoundUpper
)

// Entry caches the result of searching a position.
type Entry struct {
	Depth    int
	Score    int
	Bound    Bound
	BestMove chess.Move
}

// Table is the position cache, keyed by the Zobrist hash over piece
// placement and side to move. It is not safe for concurrent use; the
// search owns exactly one and the parallel root workers never touch it.
type Table struct {
	entries    map[uint64]Entry
	maxEntries int
	hits       uint64
	stores     uint64
}

// NewTable creates a position cache that is cleared wholesale once it
// grows past maxEntries.
func NewTable(maxEntries int) *Table {
	return &Table{
		entries:    make(map[uint64]Entry),
		maxEntries: maxEntries,
	}
}

// Probe returns the cached entry for a key, if any.
func (t *Table) Probe(key uint64) (Entry, bool) {
	entry, ok := t.entries[key]
	if ok {
		t.hits++
	}
	return entry, ok
}

// Store writes an entry, keeping the deeper of the old and new searches
// when the position is already cached.
func (t *Table) Store(key uint64, entry Entry) {
	if old, ok := t.entries[key]; ok && old.Depth > entry.Depth {
		return
	}
	t.entries[key] = entry
	t.stores++
}

// Len returns the number of cached positions.
func (t *Table) Len() int {
	return len(t.entries)
}

// ClearIfOversized empties the whole cache once it exceeds its capacity.
// Coarse, but it keeps memory bounded without bookkeeping per entry.
// Returns true if the cache was cleared.
func (t *Table) ClearIfOversized() bool {
	if len(t.entries) <= t.maxEntries {
		return false
	}
	t.entries = make(map[uint64]Entry)
	return true
}

// Clear empties the cache unconditionally.
func (t *Table) Clear() {
	t.entries = make(map[uint64]Entry)
}

// scoreToTable converts a score at the current ply into the ply-neutral
// form stored in the cache. Mate scores encode distance from the root, so
// the current ply must be removed before the score can be reused at a
// different depth in the tree.
func scoreToTable(score, ply int) int {
	if score >= eval.MateThreshold {
		return score + ply
	}
	if score <= -eval.MateThreshold {
		return score - ply
	}
	return score
}

// scoreFromTable is the inverse of scoreToTable for the probing node's ply.
func scoreFromTable(score, ply int) int {
	if score >= eval.MateThreshold {
		return score - ply
	}
	if score <= -eval.MateThreshold {
		return score + ply
	}
	return score
}
