// Package search implements the move-search engine: a principal variation
// search with iterative deepening, a position cache, move-ordering
// heuristics, cooperative time management, and an optional parallel root
// pre-ordering pass. All mutable state lives in an explicit SearchContext
// owned by the top-level call.
package search

import (
	"github.com/ThenerzZ/chess-engine-go/internal/chess"
	"github.com/ThenerzZ/chess-engine-go/internal/eval"
)

// pvs is the recursive principal variation search. Scores follow the
// negamax convention: always from the perspective of the side to move at
// this node. Boards are cloned per branch, never mutated in place.
func pvs(g chess.Game, depth, alpha, beta, ply int, isPV bool, prev chess.Move, sc *SearchContext) int {
	// Once cancelled, unwind with the static evaluation instead of
	// panicking out of the recursion.
	if sc.Stopped() {
		return eval.EvaluatePosition(g)
	}
	sc.countNode()

	if g.IsCheckmate() {
		// Mate scores carry the ply so nearer mates score higher.
		return -(eval.MateScore - ply)
	}
	if g.IsStalemate() || g.HasInsufficientMaterial() {
		return eval.DrawScore
	}

	if depth <= 0 {
		return quiescence(g, alpha, beta, quiescenceDepth, ply, sc)
	}

	originalAlpha := alpha
	key := g.Hash()
	var hashMove chess.Move

	if entry, ok := sc.table.Probe(key); ok {
		hashMove = entry.BestMove
		// Cached bounds are not trusted on the principal variation, so
		// the actual best line is always searched out in full.
		if entry.Depth >= depth && !isPV {
			sc.stats.TTHits++
			score := scoreFromTable(entry.Score, ply)
			switch entry.Bound {
			case BoundExact:
				return score
			case BoundLower:
				if score > alpha {
					alpha = score
				}
			case BoundUpper:
				if score <= alpha {
					return score
				}
			}
			if alpha >= beta {
				return score
			}
		}
	}

	inCheck := g.IsInCheck(g.CurrentTurn())

	// Null move: if passing the turn still refutes the opponent's line,
	// an actual move will too.
	if sc.cfg.UseNullMove && !isPV && canTryNullMove(g, depth, inCheck, beta) {
		child := g.Clone()
		child.MakeNullMove()
		score := -pvs(child, depth-1-nullMoveReduction, -beta, -beta+1, ply+1, false, chess.Move{}, sc)
		if score >= beta && !eval.IsMateScore(score) {
			return beta
		}
	}

	// Futility: a shallow quiet node whose evaluation cannot climb back
	// to alpha is not worth expanding.
	if sc.cfg.UseFutility && !isPV && depth < len(futilityMargins) && !inCheck {
		static := eval.EvaluatePosition(g)
		if canPruneFutile(depth, inCheck, static, alpha) {
			return static
		}
	}

	moves := g.LegalMoves()
	if len(moves) == 0 {
		if inCheck {
			return -(eval.MateScore - ply)
		}
		return eval.DrawScore
	}
	orderMoves(g, moves, hashMove, prev, ply, sc)

	bestScore := -eval.Infinity
	var bestMove chess.Move
	searched := 0

	for _, move := range moves {
		child := g.Clone()
		if err := child.MakeMove(move); err != nil {
			// Generation is fully legal upstream; a rejected move is
			// skipped rather than aborting the search.
			continue
		}
		searched++

		var score int
		if searched == 1 {
			score = -pvs(child, depth-1, -beta, -alpha, ply+1, isPV, move, sc)
		} else {
			reduction := 0
			if sc.cfg.UseLMR && shouldReduceMove(depth, searched, move, inCheck, childGivesCheck(child)) {
				reduction = lmrReduction(depth, searched)
			}
			// Zero-window probe, possibly reduced; re-search with the
			// full window only when the probe suggests an improvement.
			score = -pvs(child, depth-1-reduction, -(alpha + 1), -alpha, ply+1, false, move, sc)
			if score > alpha && score < beta {
				score = -pvs(child, depth-1, -beta, -alpha, ply+1, isPV, move, sc)
			}
		}

		if score > bestScore {
			bestScore = score
			bestMove = move
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			if !move.IsCapture() {
				sc.recordCutoff(move, prev, ply, depth)
			}
			break
		}
	}

	if searched == 0 {
		if inCheck {
			return -(eval.MateScore - ply)
		}
		return eval.DrawScore
	}

	// Results produced after cancellation are partial; don't cache them.
	if !sc.Stopped() {
		bound := BoundExact
		if bestScore <= originalAlpha {
			bound = BoundUpper
		} else if bestScore >= beta {
			bound = BoundLower
		}
		sc.table.Store(key, Entry{
			Depth:    depth,
			Score:    scoreToTable(bestScore, ply),
			Bound:    bound,
			BestMove: bestMove,
		})
	}

	return bestScore
}
