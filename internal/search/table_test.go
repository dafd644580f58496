package search

import (
	"testing"

	"github.com/ThenerzZ/chess-engine-go/internal/chess"
	"github.com/ThenerzZ/chess-engine-go/internal/eval"
	"github.com/ThenerzZ/chess-engine-go/internal/testutil"
)

func TestTableRoundTrip(t *testing.T) {
	table := NewTable(100)

	entry := Entry{Depth: 5, Score: 42, Bound: BoundExact, BestMove: mustParseMove(t, "e2e4")}
	table.Store(1234, entry)

	got, ok := table.Probe(1234)
	testutil.AssertTrue(t, ok, "stored entry not found")
	testutil.AssertEqual(t, got, entry)

	if _, ok := table.Probe(9999); ok {
		t.Error("probe of unknown key succeeded")
	}
}

func TestTableKeepsDeeperEntry(t *testing.T) {
	table := NewTable(100)

	table.Store(1, Entry{Depth: 6, Score: 100, Bound: BoundExact})
	table.Store(1, Entry{Depth: 2, Score: -30, Bound: BoundExact})

	got, _ := table.Probe(1)
	testutil.AssertEqual(t, got.Depth, 6, "shallower entry replaced a deeper one")
	testutil.AssertEqual(t, got.Score, 100)

	// An equal or deeper search does replace.
	table.Store(1, Entry{Depth: 7, Score: 55, Bound: BoundLower})
	got, _ = table.Probe(1)
	testutil.AssertEqual(t, got.Depth, 7)
}

func TestTableClearIfOversized(t *testing.T) {
	table := NewTable(3)
	for key := uint64(0); key < 3; key++ {
		table.Store(key, Entry{Depth: 1})
	}
	testutil.AssertFalse(t, table.ClearIfOversized(), "cleared while within capacity")
	testutil.AssertEqual(t, table.Len(), 3)

	table.Store(4, Entry{Depth: 1})
	testutil.AssertTrue(t, table.ClearIfOversized(), "not cleared beyond capacity")
	testutil.AssertEqual(t, table.Len(), 0)
}

// TestMateScoreShift checks the cache round-trip property: a mate score
// stored at one ply and read back at the same ply is unchanged, and the
// table-resident form is ply-neutral.
func TestMateScoreShift(t *testing.T) {
	tests := []struct {
		name  string
		score int
		ply   int
	}{
		{"plain score", 250, 4},
		{"mating side", eval.MateScore - 7, 3},
		{"mated side", -(eval.MateScore - 7), 3},
		{"root ply", eval.MateScore - 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stored := scoreToTable(tt.score, tt.ply)
			testutil.AssertEqual(t, scoreFromTable(stored, tt.ply), tt.score)
		})
	}

	// A mate found 5 plies below a node at ply 2 reads back at ply 4 as
	// a mate 2 plies further away.
	stored := scoreToTable(eval.MateScore-7, 2)
	testutil.AssertEqual(t, scoreFromTable(stored, 4), eval.MateScore-9)
}

func mustParseMove(t *testing.T, s string) chess.Move {
	t.Helper()
	move, err := chess.ParseMove(s)
	if err != nil {
		t.Fatalf("ParseMove(%q) error: %v", s, err)
	}
	return move
}
