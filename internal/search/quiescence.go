package search

import (
	"github.com/ThenerzZ/chess-engine-go/internal/chess"
	"github.com/ThenerzZ/chess-engine-go/internal/eval"
)

// quiescenceDepth bounds the capture-only extension below depth 0.
const quiescenceDepth = 6

// quiescence resolves pending tactics before a static evaluation is
// trusted: only captures are searched, everything else "stands pat" on
// the evaluation. This is what keeps the engine from trading its queen
// one ply past the horizon.
func quiescence(g chess.Game, alpha, beta, depth, ply int, sc *SearchContext) int {
	sc.countQNode()
	if sc.Stopped() {
		return eval.EvaluatePosition(g)
	}

	// Mate scores stay ply-shifted here too, so a mate found past the
	// horizon still ranks by distance from the root.
	if g.IsCheckmate() {
		return -(eval.MateScore - ply)
	}

	standPat := eval.EvaluatePosition(g)
	if depth == 0 || g.IsStalemate() {
		return standPat
	}

	// The position is already good enough to refute the opponent's line.
	if standPat >= beta {
		return beta
	}

	// Even the best single capture cannot recover to alpha.
	if canPruneDelta(standPat, alpha) {
		return alpha
	}

	if standPat > alpha {
		alpha = standPat
	}

	for _, capture := range generateCaptures(g) {
		// Skip captures that lose material outright.
		if seeEstimate(g, capture) < seeRetainThreshold {
			continue
		}
		if sc.Stopped() {
			return alpha
		}

		child := g.Clone()
		if err := child.MakeMove(capture); err != nil {
			continue
		}

		score := -quiescence(child, -beta, -alpha, depth-1, ply+1, sc)
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}

	return alpha
}

// childGivesCheck reports whether the position just reached has the new
// side to move in check.
func childGivesCheck(child chess.Game) bool {
	return child.IsInCheck(child.CurrentTurn())
}
