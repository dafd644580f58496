package search

import (
	"sort"

	"github.com/ThenerzZ/chess-engine-go/internal/chess"
	"github.com/ThenerzZ/chess-engine-go/internal/eval"
)

// Ordering score bands, highest first: hash move, captures, killers,
// counter move, promotions, then quiet moves by history score. The bands
// are spaced so no in-band bonus can cross into the band above.
const (
	hashMoveScore = 1_000_000
	captureBase   = 100_000
	killerScore   = 90_000
	counterScore  = 80_000
	promotionBase = 70_000
)

// exchangeValues are coarse piece values for capture ordering only.
var exchangeValues = [chess.NumPieceValues]int{
	chess.Pawn:   1,
	chess.Knight: 3,
	chess.Bishop: 3,
	chess.Rook:   5,
	chess.Queen:  9,
	chess.King:   0,
}

// victimOf returns the piece type a capture wins. En passant victims do
// not stand on the destination square.
func victimOf(g chess.Game, move chess.Move) chess.Piece {
	if move.Class == chess.EnPassantMove {
		return chess.Pawn
	}
	if piece, ok := g.GetPiece(move.To); ok {
		return chess.ExtractPiece(piece)
	}
	return chess.Empty
}

// attackerOf returns the piece type making the move.
func attackerOf(g chess.Game, move chess.Move) chess.Piece {
	if piece, ok := g.GetPiece(move.From); ok {
		return chess.ExtractPiece(piece)
	}
	return chess.Empty
}

// mvvLVA scores a capture by most-valuable-victim, least-valuable-attacker:
// winning a queen with a pawn ranks above winning a queen with a rook.
func mvvLVA(victim, attacker chess.Piece) int {
	return exchangeValues[victim]*100 - exchangeValues[attacker]*10
}

// seeEstimate approximates the net material of a capture as victim minus
// attacker in centipawns: the crudest static exchange estimate, assuming
// the attacker is always recaptured. It never overvalues a capture.
func seeEstimate(g chess.Game, move chess.Move) int {
	return eval.PieceValue(victimOf(g, move)) - eval.PieceValue(attackerOf(g, move))
}

// orderMoves sorts the legal move list by descending cutoff likelihood.
// Ties keep generation order (the sort is stable), so identical inputs
// always search in the same order.
func orderMoves(g chess.Game, moves []chess.Move, hashMove chess.Move, prev chess.Move, ply int, sc *SearchContext) {
	counter, hasCounter := sc.counterTo(prev)

	scored := make([]scoredMove, len(moves))
	for i, move := range moves {
		scored[i] = scoredMove{move: move, score: moveScore(g, move, hashMove, counter, hasCounter, ply, sc)}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	for i := range scored {
		moves[i] = scored[i].move
	}
}

// scoredMove pairs a move with its ordering priority.
type scoredMove struct {
	move  chess.Move
	score int
}

// moveScore assigns one move its ordering priority.
func moveScore(g chess.Game, move chess.Move, hashMove, counter chess.Move, hasCounter bool, ply int, sc *SearchContext) int {
	if move == hashMove {
		return hashMoveScore
	}

	if move.IsCapture() {
		score := captureBase + mvvLVA(victimOf(g, move), attackerOf(g, move))
		if see := seeEstimate(g, move); see > 0 {
			score += see
		}
		return score
	}

	if slot := sc.killerSlot(move, ply); slot >= 0 {
		return killerScore - slot*100
	}

	if hasCounter && move == counter {
		return counterScore
	}

	if move.IsPromotion() {
		return promotionBase + eval.PieceValue(move.Promotion)
	}

	score := sc.historyScore(move)
	if score > historyMax {
		score = historyMax
	}
	return score
}

// generateCaptures filters the legal move list down to captures, ordered
// by exchange estimate first and MVV-LVA second.
func generateCaptures(g chess.Game) []chess.Move {
	var captures []chess.Move
	for _, move := range g.LegalMoves() {
		if move.IsCapture() {
			captures = append(captures, move)
		}
	}

	sort.SliceStable(captures, func(i, j int) bool {
		left := seeEstimate(g, captures[i])*1000 + mvvLVA(victimOf(g, captures[i]), attackerOf(g, captures[i]))
		right := seeEstimate(g, captures[j])*1000 + mvvLVA(victimOf(g, captures[j]), attackerOf(g, captures[j]))
		return left > right
	})
	return captures
}
