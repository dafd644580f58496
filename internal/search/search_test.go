package search

import (
	"testing"

	"github.com/ThenerzZ/chess-engine-go/internal/chess"
	"github.com/ThenerzZ/chess-engine-go/internal/eval"
	"github.com/ThenerzZ/chess-engine-go/internal/testutil"
)

func TestPVSTerminalScores(t *testing.T) {
	sc := newTestContext()

	// The side to move is checkmated: a mate score shifted by ply, so
	// nearer mates outrank farther ones.
	mated := mustGame(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	testutil.AssertEqual(t, pvs(mated, 4, -eval.Infinity, eval.Infinity, 3, true, chess.Move{}, sc), -(eval.MateScore - 3))

	stalemated := mustGame(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	testutil.AssertEqual(t, pvs(stalemated, 4, -eval.Infinity, eval.Infinity, 2, true, chess.Move{}, sc), eval.DrawScore)
}

func TestPVSStoppedReturnsStaticEval(t *testing.T) {
	sc := newTestContext()
	sc.Stop()

	g := mustGame(t, "4k3/8/8/3q4/4P3/8/8/4K3 w - - 0 1")
	testutil.AssertEqual(t, pvs(g, 6, -eval.Infinity, eval.Infinity, 1, true, chess.Move{}, sc), eval.EvaluatePosition(g))
}

func TestPVSPrefersFasterMate(t *testing.T) {
	// White mates with Ra8 now; any delaying move scores worse.
	g := mustGame(t, "6k1/5ppp/8/8/8/8/8/R3K3 w - - 0 1")
	sc := newTestContext()

	score, move, completed := searchRoot(g, g.LegalMoves(), 3, -eval.Infinity, eval.Infinity, sc)
	testutil.AssertTrue(t, completed)
	testutil.AssertEqual(t, move.String(), "a1a8")
	testutil.AssertEqual(t, score, eval.MateScore-1)
}

func TestQuiescenceStandPat(t *testing.T) {
	// A quiet position with no captures available settles at its static
	// evaluation.
	g := mustGame(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	sc := newTestContext()

	static := eval.EvaluatePosition(g)
	testutil.AssertEqual(t, quiescence(g, -eval.Infinity, eval.Infinity, quiescenceDepth, 0, sc), static)
}

func TestQuiescenceMateScoreShiftedByPly(t *testing.T) {
	// A mate reached inside the capture extension carries its distance
	// from the root, same convention as the main search.
	g := mustGame(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	sc := newTestContext()

	testutil.AssertEqual(t, quiescence(g, -eval.Infinity, eval.Infinity, quiescenceDepth, 5, sc), -(eval.MateScore - 5))
}

func TestQuiescenceResolvesCapture(t *testing.T) {
	// White to move wins the hanging queen; quiescence must see it even
	// at depth zero of the main search.
	g := mustGame(t, "4k3/8/8/3q4/4P3/8/8/4K3 w - - 0 1")
	sc := newTestContext()

	score := quiescence(g, -eval.Infinity, eval.Infinity, quiescenceDepth, 0, sc)
	static := eval.EvaluatePosition(g)
	if score <= static {
		t.Errorf("quiescence score %d did not improve on stand-pat %d", score, static)
	}
	if score < 500 {
		t.Errorf("score = %d, want a queen-sized advantage", score)
	}
}

func TestPVSStoresExactEntryForPVNode(t *testing.T) {
	g := mustGame(t, "r3k3/ppp5/8/8/8/8/PPP5/R3K3 w - - 0 1")
	sc := newTestContext()

	pvs(g, 2, -eval.Infinity, eval.Infinity, 0, true, chess.Move{}, sc)

	entry, ok := sc.table.Probe(g.Hash())
	testutil.AssertTrue(t, ok, "PV node not cached")
	testutil.AssertEqual(t, entry.Bound, BoundExact)
	testutil.AssertFalse(t, entry.BestMove.IsZero(), "cached entry has no best move")
}
