package search

import (
	"context"
	"testing"
	"time"

	"github.com/ThenerzZ/chess-engine-go/internal/board"
	"github.com/ThenerzZ/chess-engine-go/internal/chess"
	"github.com/ThenerzZ/chess-engine-go/internal/config"
	"github.com/ThenerzZ/chess-engine-go/internal/testutil"
)

func newTestContext() *SearchContext {
	timer := NewTimeManager(40*time.Minute, 40, 40, time.Second, time.Minute, 0)
	return newSearchContext(context.Background(), config.Default(), NewTable(1000), timer)
}

func mustGame(t *testing.T, fen string) chess.Game {
	t.Helper()
	g, err := board.FromFEN(fen)
	if err != nil {
		t.Fatalf("FromFEN(%q) error: %v", fen, err)
	}
	return g
}

// legalBySquares finds the legal move matching the given coordinates, so
// tests compare against moves carrying the generator's class information.
func legalBySquares(t *testing.T, g chess.Game, s string) chess.Move {
	t.Helper()
	want := mustParseMove(t, s)
	for _, move := range g.LegalMoves() {
		if move.SameSquares(want) && move.Promotion == want.Promotion {
			return move
		}
	}
	t.Fatalf("no legal move %s in this position", s)
	return chess.Move{}
}

func TestOrderMovesHashMoveFirst(t *testing.T) {
	g := board.NewInitial()
	sc := newTestContext()

	moves := g.LegalMoves()
	hashMove := moves[len(moves)-1]

	orderMoves(g, moves, hashMove, chess.Move{}, 0, sc)
	testutil.AssertEqual(t, moves[0], hashMove, "hash move not searched first")
}

func TestOrderMovesBands(t *testing.T) {
	// White pawn on d5 can win the c6 queen; everything else is quiet.
	g := mustGame(t, "4k3/8/2q5/3P4/8/8/8/4K3 w - - 0 1")
	sc := newTestContext()

	capture := legalBySquares(t, g, "d5c6")
	killer := legalBySquares(t, g, "e1d1")
	historyMove := legalBySquares(t, g, "e1f1")

	sc.recordCutoff(killer, chess.Move{}, 0, 3)
	// History credit at an unrelated ply still orders quiet moves globally.
	sc.recordCutoff(historyMove, chess.Move{}, 7, 4)

	moves := g.LegalMoves()
	orderMoves(g, moves, chess.Move{}, chess.Move{}, 0, sc)

	testutil.AssertEqual(t, moves[0], capture, "capture not ordered before quiet moves")
	testutil.AssertEqual(t, moves[1], killer, "killer not ordered directly after captures")
	testutil.AssertEqual(t, moves[2], historyMove, "history move not ordered before cold quiets")
}

func TestOrderMovesCounterMove(t *testing.T) {
	g := mustGame(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	sc := newTestContext()

	prev := mustParseMove(t, "e8d8")
	counter := legalBySquares(t, g, "e1e2")
	sc.counters[counterKey{from: prev.From, to: prev.To}] = counter

	moves := g.LegalMoves()
	orderMoves(g, moves, chess.Move{}, prev, 0, sc)
	testutil.AssertEqual(t, moves[0], counter, "counter move not ordered first among quiets")
}

func TestOrderMovesQueenPromotionFirst(t *testing.T) {
	g := mustGame(t, "4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	sc := newTestContext()

	moves := g.LegalMoves()
	orderMoves(g, moves, chess.Move{}, chess.Move{}, 0, sc)

	testutil.AssertTrue(t, moves[0].IsPromotion(), "promotion not ordered before quiet moves")
	testutil.AssertEqual(t, moves[0].Promotion, chess.Queen, "queen promotion not first")
}

func TestOrderMovesStableTies(t *testing.T) {
	g := board.NewInitial()

	first := g.LegalMoves()
	orderMoves(g, first, chess.Move{}, chess.Move{}, 0, newTestContext())

	second := g.LegalMoves()
	orderMoves(g, second, chess.Move{}, chess.Move{}, 0, newTestContext())

	testutil.AssertEqual(t, second, first, "identical inputs ordered differently")
}

func TestMVVLVA(t *testing.T) {
	if mvvLVA(chess.Queen, chess.Pawn) <= mvvLVA(chess.Queen, chess.Rook) {
		t.Error("pawn takes queen not preferred over rook takes queen")
	}
	if mvvLVA(chess.Queen, chess.Rook) <= mvvLVA(chess.Pawn, chess.Pawn) {
		t.Error("rook takes queen not preferred over pawn takes pawn")
	}
}

func TestGenerateCaptures(t *testing.T) {
	// The d5 pawn can take either the c6 queen or the e6 bishop.
	g := mustGame(t, "4k3/8/2q1b3/3P4/8/8/8/4K3 w - - 0 1")

	captures := generateCaptures(g)
	testutil.AssertEqual(t, len(captures), 2)
	testutil.AssertEqual(t, captures[0].String(), "d5c6", "most valuable victim not first")
	testutil.AssertEqual(t, captures[1].String(), "d5e6")

	for _, move := range captures {
		testutil.AssertTrue(t, move.IsCapture(), "non-capture %s in capture list", move)
	}
}
