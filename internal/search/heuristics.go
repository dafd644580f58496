package search

import (
	"math"

	"github.com/ThenerzZ/chess-engine-go/internal/chess"
	"github.com/ThenerzZ/chess-engine-go/internal/eval"
)

// Pruning parameters. Each heuristic is a standalone predicate so it can
// be toggled through the configuration and tested in isolation.
const (
	// nullMoveReduction is how many plies shallower the null-move
	// verification search runs.
	nullMoveReduction = 3

	// lmrDepthThreshold / lmrMoveThreshold gate late move reductions:
	// only at meaningful depth, and only for moves ordered late.
	lmrDepthThreshold = 3
	lmrMoveThreshold  = 4

	// deltaMargin is the most a single quiet capture is assumed able to
	// swing the evaluation in quiescence.
	deltaMargin = 200

	// seeRetainThreshold drops quiescence captures whose exchange
	// estimate loses more than a fraction of a pawn.
	seeRetainThreshold = -50

	// nullMoveMaterialFloor is the minimum non-pawn material the side to
	// move must keep for null-move pruning: with less, zugzwang makes the
	// "a real move is at least as good as passing" assumption unsafe.
	nullMoveMaterialFloor = 500
)

// futilityMargins index by remaining depth: the largest plausible swing a
// quiet move can produce within that horizon.
var futilityMargins = [4]int{0, 300, 500, 800}

// canTryNullMove decides whether skipping a turn is a sound way to prove a
// beta cutoff here. Disabled in check (passing would be illegal anyway in
// spirit) and in low-material endgames.
func canTryNullMove(g chess.Game, depth int, inCheck bool, beta int) bool {
	if depth <= nullMoveReduction || inCheck {
		return false
	}
	if eval.IsMateScore(beta) {
		return false
	}
	return nonPawnMaterial(g, g.CurrentTurn()) >= nullMoveMaterialFloor
}

// canPruneFutile decides whether a shallow node whose static evaluation
// plus an optimistic margin still cannot reach alpha may return without
// expanding any moves. Never fires in check or near mate scores.
func canPruneFutile(depth int, inCheck bool, staticEval, alpha int) bool {
	if depth < 1 || depth >= len(futilityMargins) || inCheck {
		return false
	}
	if eval.IsMateScore(alpha) {
		return false
	}
	return staticEval+futilityMargins[depth] <= alpha
}

// shouldReduceMove decides whether a late, quiet move may be searched at
// reduced depth first. Captures, promotions, and checks keep full depth.
func shouldReduceMove(depth, moveIndex int, move chess.Move, inCheck, givesCheck bool) bool {
	if depth < lmrDepthThreshold || moveIndex < lmrMoveThreshold {
		return false
	}
	if move.IsCapture() || move.IsPromotion() {
		return false
	}
	return !inCheck && !givesCheck
}

// lmrReduction grows logarithmically with how late the move is ordered,
// capped so the reduced search keeps at least one ply.
func lmrReduction(depth, moveIndex int) int {
	reduction := int(math.Log(float64(moveIndex + 1)))
	if reduction > depth-1 {
		reduction = depth - 1
	}
	if reduction < 1 {
		reduction = 1
	}
	return reduction
}

// canPruneDelta decides whether quiescence may give up immediately because
// even the best imaginable capture cannot lift stand-pat back to alpha.
func canPruneDelta(standPat, alpha int) bool {
	if eval.IsMateScore(alpha) {
		return false
	}
	return standPat < alpha-deltaMargin
}

// nonPawnMaterial sums the given side's piece material excluding pawns and
// the king.
func nonPawnMaterial(g chess.Game, colour chess.Colour) int {
	total := 0
	for _, pos := range chess.AllPositions() {
		piece, ok := g.GetPiece(pos)
		if !ok || chess.ExtractColour(piece) != colour {
			continue
		}
		switch pieceType := chess.ExtractPiece(piece); pieceType {
		case chess.Pawn, chess.King:
		default:
			total += eval.PieceValue(pieceType)
		}
	}
	return total
}
